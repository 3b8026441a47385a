package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/resend/resend-cli/internal/config"
)

// outputFilePerm keeps results such as new API tokens private to the owner
const outputFilePerm = 0600

// Render writes v to w as a table or as indented JSON
func Render(w io.Writer, v interface{}, format config.OutputFormat) error {
	if format == config.FormatJSON {
		return writeJSON(w, v)
	}

	t, err := tabulate(v)
	if err != nil {
		return err
	}
	return writeTable(w, t)
}

// Emit renders v per cfg, to cfg.Output when set and to stdout otherwise
func Emit(cfg config.EffectiveConfig, stdout io.Writer, v interface{}) error {
	if cfg.Output == "" {
		return Render(stdout, v, cfg.Format)
	}

	var buf bytes.Buffer
	if err := Render(&buf, v, cfg.Format); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output, buf.Bytes(), outputFilePerm); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if runtime.GOOS != "windows" {
		if err := os.Chmod(cfg.Output, outputFilePerm); err != nil {
			return fmt.Errorf("failed to set output file permissions: %w", err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ErrorObject is the machine-readable failure written to stderr
type ErrorObject struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes {"error": tag, "message": message} as a single line
func WriteError(w io.Writer, tag, message string) {
	data, err := json.Marshal(ErrorObject{Error: tag, Message: message})
	if err != nil {
		fmt.Fprintf(w, "{\"error\":\"error\",\"message\":%q}\n", message)
		return
	}
	fmt.Fprintln(w, string(data))
}
