// Package main provides the entry point for the webenum CLI.
//
// webenum chains subfinder, dnsx, naabu, httpx and katana against a single
// domain and leaves a URL list ready to import into Burp Suite.
//
// Usage:
//
//	webenum -d example.com
//	webenum -d example.com -o results -b 127.0.0.1:8080
//	webenum -d example.com --dry-run
//
// See --help for all available options.
package main

func main() {
	Execute()
}
