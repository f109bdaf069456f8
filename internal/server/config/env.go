package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// malformed values leave the current value untouched.
//
// Recognized variables: ADDRESS, DATABASE_DSN, JWT_SECRET, TOKEN_VALIDITY
// (Go duration, e.g. "168h"), BCRYPT_COST, PDF_URL, PDF_PATH, PDF_URL_TTL,
// S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT,
// S3_OBJECT_KEY, PAYMENT_PROVIDER_MODE, RAZORPAY_KEY_ID, RAZORPAY_KEY_SECRET,
// RAZORPAY_BASE_URL, TEST_MODE.
func parseEnv(config *Config) {
	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "JWT_SECRET")
	setDuration(&config.TokenValidityDuration, "TOKEN_VALIDITY")
	setInt(&config.BcryptCost, "BCRYPT_COST")

	setString(&config.PDFURL, "PDF_URL")
	setDuration(&config.PDFURLTTL, "PDF_URL_TTL")
	if v, ok := os.LookupEnv("PDF_PATH"); ok && v != "" {
		// The explicitly configured path takes precedence over defaults,
		// which remain as fallback candidates.
		config.PDFPaths = append([]string{v}, config.PDFPaths...)
	}

	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.S3ObjectKey, "S3_OBJECT_KEY")

	setString(&config.PaymentProviderMode, "PAYMENT_PROVIDER_MODE")
	setString(&config.RazorpayKeyID, "RAZORPAY_KEY_ID")
	setString(&config.RazorpayKeySecret, "RAZORPAY_KEY_SECRET")
	setString(&config.RazorpayBaseURL, "RAZORPAY_BASE_URL")

	if v, ok := os.LookupEnv("TEST_MODE"); ok {
		config.TestModeBypass = v == "true"
	}
}

func setString(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*target = v
	}
}

func setInt(target *int, name string) {
	if v, ok := os.LookupEnv(name); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func setDuration(target *time.Duration, name string) {
	if v, ok := os.LookupEnv(name); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*target = d
		}
	}
}
