package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// configPath returns $XILPRINTF_CONFIG_PATH, or ~/.xilprintf when unset.
func configPath() string {
	if path := os.Getenv("XILPRINTF_CONFIG_PATH"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".xilprintf")
}

// LoadConfigArgs returns the default flags stored in the config file, to be
// placed in front of the command-line arguments. A missing file yields no
// flags and no error.
//
// Each non-empty line that does not start with '#' holds one flag, written
// as "--flag", "--flag=value" or "--flag value". Anything else is rejected:
// a stray positional word would end flag parsing for the whole command line.
func LoadConfigArgs() ([]string, error) {
	path := configPath()
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	var (
		args   []string
		lineNo int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, "-") {
			return nil, fmt.Errorf("config %s:%d: %q is not a flag", path, lineNo, line)
		}

		if i := strings.IndexAny(line, " \t"); i != -1 && !strings.Contains(line[:i], "=") {
			args = append(args, line[:i], strings.TrimSpace(line[i:]))
			continue
		}
		args = append(args, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return args, nil
}
