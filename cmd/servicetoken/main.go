// Command servicetoken issues the bearer token a form host presents to the validation API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"webformguard/config"
	"webformguard/internal/adapters/auth"
)

func main() {
	host := pflag.StringP("host", "H", "", "ID of the form host the token is issued to (required)")
	forms := pflag.StringSlice("forms", nil, "form IDs the host validates, informational")
	ttl := pflag.Duration("ttl", 365*24*time.Hour, "token lifetime; 0 issues a token without expiry")
	pflag.Parse()

	if *host == "" {
		fmt.Fprintln(os.Stderr, "servicetoken: --host is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "servicetoken: load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.AuthEnabled() {
		fmt.Fprintln(os.Stderr, "servicetoken: SERVICE_TOKEN_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewJWTIssuer(cfg.ServiceTokenSecret).Issue(*host, *forms, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "servicetoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
