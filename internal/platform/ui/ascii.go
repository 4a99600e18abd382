// internal/platform/ui/ascii.go
package ui

// Banner is printed at the top of every run.
const Banner = `
╦ ╦╔═╗╔╗ ╔═╗╔╗╔╦ ╦╔╦╗
║║║║╣ ╠╩╗║╣ ║║║║ ║║║║
╚╩╝╚═╝╚═╝╚═╝╝╚╝╚═╝╩ ╩`

// Tagline follows the banner.
const Tagline = "Web Enumeration Toolchain"
