// Package useragent extracts operating system, browser, device and CPU
// details from User-Agent strings.
package useragent

import (
	"regexp"
	"strings"

	ua "github.com/mileusna/useragent"
)

// Info is what could be recognised in a User-Agent string. Unrecognised
// parts are empty.
type Info struct {
	OSName         string
	OSVersion      string
	BrowserName    string
	BrowserVersion string
	DeviceVendor   string
	DeviceModel    string
	DeviceType     string
	Architecture   string
}

// Device types.
const (
	DeviceMobile = "mobile"
	DeviceTablet = "tablet"
)

// Every real User-Agent carries at least one product/version token.
var productToken = regexp.MustCompile(`[A-Za-z][\w.\-]*/[\w.]+`)

var architectures = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"amd64", regexp.MustCompile(`(?i)\b(x86_64|x86-64|x64|win64|wow64|amd64)\b`)},
	{"arm64", regexp.MustCompile(`(?i)\b(aarch64|arm64|armv8l?)\b`)},
	{"armhf", regexp.MustCompile(`(?i)\barmv7l?\b`)},
	{"arm", regexp.MustCompile(`(?i)\barm(v\d)?\w*\b`)},
	{"ia32", regexp.MustCompile(`(?i)\b(i[3-6]86|x86)\b`)},
	{"ppc", regexp.MustCompile(`(?i)\b(ppc|powerpc)\b`)},
	{"sparc", regexp.MustCompile(`(?i)\bsparc(64)?\b`)},
	{"mips", regexp.MustCompile(`(?i)\bmips(64)?\b`)},
}

var vendors = []struct {
	prefix string
	vendor string
}{
	{"iPhone", "Apple"},
	{"iPad", "Apple"},
	{"iPod", "Apple"},
	{"Pixel", "Google"},
	{"Nexus", "Google"},
	{"SM-", "Samsung"},
	{"GT-", "Samsung"},
	{"Galaxy", "Samsung"},
	{"Redmi", "Xiaomi"},
	{"Mi ", "Xiaomi"},
	{"Moto", "Motorola"},
	{"Nokia", "Nokia"},
	{"ONEPLUS", "OnePlus"},
	{"HUAWEI", "Huawei"},
	{"LM-", "LG"},
	{"Kindle", "Amazon"},
	{"KF", "Amazon"},
}

// Parse inspects s. It never fails; a string that is not a User-Agent
// yields an empty Info.
func Parse(s string) Info {
	s = strings.TrimSpace(s)
	if !productToken.MatchString(s) {
		return Info{}
	}

	parsed := ua.Parse(s)
	info := Info{
		OSName:         parsed.OS,
		OSVersion:      parsed.OSVersion,
		BrowserName:    parsed.Name,
		BrowserVersion: parsed.Version,
		DeviceModel:    parsed.Device,
		Architecture:   architecture(s),
	}

	switch {
	case parsed.Tablet:
		info.DeviceType = DeviceTablet
	case parsed.Mobile:
		info.DeviceType = DeviceMobile
	}
	info.DeviceVendor = vendor(parsed.Device)
	return info
}

// IsEmpty reports whether nothing was recognised.
func (i Info) IsEmpty() bool {
	return strings.TrimSpace(i.Describe()) == ""
}

// Describe renders the recognised parts as paragraphs.
func (i Info) Describe() string {
	var b strings.Builder
	if i.OSName != "" {
		b.WriteString("OS: " + join(i.OSName, i.OSVersion) + "\n\n")
	}
	if i.BrowserName != "" {
		b.WriteString("Browser: " + join(i.BrowserName, i.BrowserVersion) + "\n\n")
	}
	if i.DeviceVendor != "" {
		b.WriteString("Device: " + join(i.DeviceVendor, i.DeviceModel, i.DeviceType) + "\n\n")
	}
	if i.Architecture != "" {
		b.WriteString("CPU Architecture: " + i.Architecture + "\n\n")
	}
	return b.String()
}

func architecture(s string) string {
	for _, a := range architectures {
		if a.pattern.MatchString(s) {
			return a.name
		}
	}
	return ""
}

func vendor(device string) string {
	for _, v := range vendors {
		if strings.HasPrefix(device, v.prefix) {
			return v.vendor
		}
	}
	return ""
}

func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
