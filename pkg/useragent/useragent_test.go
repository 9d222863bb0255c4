package useragent

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "chrome on windows",
			input:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			contains: []string{"OS: Windows", "Browser: Chrome 91", "CPU Architecture: amd64"},
			absent:   []string{"Device:"},
		},
		{
			name:     "safari on iphone",
			input:    "Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Mobile/15E148 Safari/604.1",
			contains: []string{"OS: iOS", "Browser: Safari", "Device: Apple iPhone mobile"},
		},
		{
			name:     "firefox on linux",
			input:    "Mozilla/5.0 (X11; Linux x86_64; rv:89.0) Gecko/20100101 Firefox/89.0",
			contains: []string{"OS: Linux", "Browser: Firefox 89", "CPU Architecture: amd64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.input)
			desc := info.Describe()
			if info.IsEmpty() {
				t.Fatal("expected recognised user agent")
			}
			for _, want := range tt.contains {
				if !strings.Contains(desc, want) {
					t.Errorf("expected %q in %q", want, desc)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(desc, bad) {
					t.Errorf("did not expect %q in %q", bad, desc)
				}
			}
			if !strings.HasSuffix(desc, "\n\n") {
				t.Errorf("expected paragraphs separated by blank lines, got %q", desc)
			}
		})
	}
}

func TestParse_NotAUserAgent(t *testing.T) {
	for _, input := range []string{"definitely not a user agent", "   ", "12345"} {
		if info := Parse(input); !info.IsEmpty() {
			t.Errorf("expected %q to be unrecognised, got %+v", input, info)
		}
	}
}

func TestDescribe(t *testing.T) {
	info := Info{
		OSName:       "Android",
		OSVersion:    "11",
		DeviceVendor: "Google",
		DeviceModel:  "Pixel 5",
		DeviceType:   DeviceMobile,
		Architecture: "arm64",
	}
	want := "OS: Android 11\n\nDevice: Google Pixel 5 mobile\n\nCPU Architecture: arm64\n\n"
	if got := info.Describe(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
