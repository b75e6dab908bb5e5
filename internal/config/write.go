package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

const writtenHeader = `# Written by acervo. Environment references were resolved when saved;
# edit by hand or rerun "acervo config init --force" to start over.

`

// WriteDefault writes the commented example config to path.
func WriteDefault(path string) error {
	return writeFile(path, []byte(defaultConfig))
}

// Write saves the config as TOML. The file holds the session token and is
// only readable by the owner.
func (c *Config) Write(path string) error {
	var buf bytes.Buffer
	buf.WriteString(writtenHeader)
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// writeFile replaces path through a rename in the same directory, so a
// reader sees the old file or the new one and never a partial write.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".acervo-*.toml")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err := f.Chmod(0600); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
