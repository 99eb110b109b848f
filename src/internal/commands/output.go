package commands

import (
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type outputFormat string

func (o *outputFormat) String() string {
	return string(*o)
}

func (o *outputFormat) Set(v string) error {
	switch v {
	case outputText, outputYAML:
		*o = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", v, outputText, outputYAML)
	}
}

func registerOutputFlag(fs *flag.FlagSet, o *outputFormat) {
	*o = outputText
	fs.Var(o, "output", "Output format: text or yaml")
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
