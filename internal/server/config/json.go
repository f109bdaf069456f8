package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/languagesphere/server/internal/flagx"
	"github.com/languagesphere/server/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "168h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	PDFURL                string         `json:"pdf_url"`
	PDFPaths              []string       `json:"pdf_paths"`
	PDFURLTTL             timex.Duration `json:"pdf_url_ttl"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	S3ObjectKey           string         `json:"s3_object_key"`
	PaymentProviderMode   string         `json:"payment_provider_mode"`
	RazorpayKeyID         string         `json:"razorpay_key_id"`
	RazorpayKeySecret     string         `json:"razorpay_key_secret"`
	RazorpayBaseURL       string         `json:"razorpay_base_url"`
	TestModeBypass        bool           `json:"test_mode_bypass"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
//
// Only fields present in the file override current values; zero values are
// skipped so the JSON overlay composes with defaults.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	overlayString(&config.PDFURL, c.PDFURL)
	if len(c.PDFPaths) > 0 {
		config.PDFPaths = c.PDFPaths
	}
	if c.PDFURLTTL.Duration != 0 {
		config.PDFURLTTL = time.Duration(c.PDFURLTTL.Duration)
	}
	overlayString(&config.S3RootUser, c.S3RootUser)
	overlayString(&config.S3RootPassword, c.S3RootPassword)
	overlayString(&config.S3Bucket, c.S3Bucket)
	overlayString(&config.S3Region, c.S3Region)
	overlayString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlayString(&config.S3ObjectKey, c.S3ObjectKey)
	overlayString(&config.PaymentProviderMode, c.PaymentProviderMode)
	overlayString(&config.RazorpayKeyID, c.RazorpayKeyID)
	overlayString(&config.RazorpayKeySecret, c.RazorpayKeySecret)
	overlayString(&config.RazorpayBaseURL, c.RazorpayBaseURL)
	if c.TestModeBypass {
		config.TestModeBypass = true
	}
}

func overlayString(target *string, value string) {
	if value != "" {
		*target = value
	}
}
