package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestLoadProfile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "coach.yml")
	content := `pitch_file: docs/pitch.txt
guide_file: docs/guide.txt
sales_rep: Alice Example
customer: Acme Corp
duration: 30 minutes
output_dir: reports
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := loadProfile(path)
	gt.NoError(t, err)
	gt.Equal(t, p.PitchFile, "docs/pitch.txt")
	gt.Equal(t, p.GuideFile, "docs/guide.txt")
	gt.Equal(t, p.SalesRep, "Alice Example")
	gt.Equal(t, p.Customer, "Acme Corp")
	gt.Equal(t, p.Duration, "30 minutes")
	gt.Equal(t, p.OutputDir, "reports")
}

func TestLoadProfileEmptyPath(t *testing.T) {
	p, err := loadProfile("")
	gt.NoError(t, err)
	gt.Equal(t, p, &profile{})
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := loadProfile("/nonexistent/coach.yml")
	gt.Error(t, err)
}

func TestLoadProfileInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.yml")
	gt.NoError(t, os.WriteFile(path, []byte("pitch_file: [unclosed"), 0644))

	_, err := loadProfile(path)
	gt.Error(t, err)
}

func TestOrDefault(t *testing.T) {
	gt.Equal(t, orDefault("flag", "profile"), "flag")
	gt.Equal(t, orDefault("", "profile"), "profile")
	gt.Equal(t, orDefault("", ""), "")
}
