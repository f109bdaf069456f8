package config

import (
	"flag"
	"os"
	"time"

	"github.com/languagesphere/server/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, hours
//	-f string   filesystem path to the book PDF (prepended to candidates)
//	-u string   external URL of the book PDF
//	-m string   payment provider mode ("trust" or "razorpay")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-f", "-u", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityHours := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	pdfPath := fs.String("f", "", "path to the book PDF")

	fs.StringVar(&config.PDFURL, "u", config.PDFURL, "external URL of the book PDF")
	fs.StringVar(&config.PaymentProviderMode, "m", config.PaymentProviderMode, "payment provider mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityHours) * time.Hour
	if *pdfPath != "" {
		config.PDFPaths = append([]string{*pdfPath}, config.PDFPaths...)
	}
}
