package config

import (
	"fmt"
	"os"
)

func Template() string {
	return template
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const template = `# frames larger than this abort the tag; 0 disables the check
max_frame_bytes = 16777216

# text | json
format = "text"

# directory for APIC images; empty disables extraction
extract_pictures = ""

# node-exporter textfile written after each run; empty disables it
metrics_textfile = ""

[server]
addr = ":9300"
max_upload_bytes = 33554432
cors_origins = ["http://localhost:3000"]
# bearer token required by POST /v1/tags; empty leaves it open
auth_token = ""
`
