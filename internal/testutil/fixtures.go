// internal/testutil/fixtures.go
package testutil

// Fixture data for tests (primitive values only, no domain imports).

// FixtureDomains contains valid scan targets.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"shop.example.co.uk",
}

// FixtureInvalidDomains contains values rejected as targets.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"2001:db8::1",
	"-invalid.com",
	"invalid-.com",
	".example.com",
	"example..com",
	"https://example.com",
}

// FixtureSubdomains is typical subdomain-discovery output.
var FixtureSubdomains = []string{
	"api.example.com",
	"www.example.com",
	"mail.example.com",
	"dev.example.com",
}

// FixtureURLs is typical HTTP probe output.
var FixtureURLs = []string{
	"https://api.example.com",
	"https://www.example.com",
	"http://dev.example.com:8080",
}

// FixtureCrawlURLs is typical crawler output; it overlaps FixtureURLs.
var FixtureCrawlURLs = []string{
	"https://www.example.com",
	"https://www.example.com/login",
	"https://api.example.com/v1/users?id=1",
}
