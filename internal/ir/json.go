package ir

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Load reads a JSON encoded module from the reader.
func Load(reader io.Reader) (*Module, error) {
	var module Module
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&module); err != nil {
		return nil, fmt.Errorf("decoding module: %w", err)
	}

	normalize(&module)
	return &module, nil
}

// LoadFile reads a JSON encoded module from a file.
func LoadFile(name string) (*Module, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening module file '%s': %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Load(file)
}

// Save writes the module as JSON to the writer.
func Save(writer io.Writer, module *Module) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(module); err != nil {
		return fmt.Errorf("encoding module: %w", err)
	}
	return nil
}

// SaveFile writes the module as JSON to a file.
func SaveFile(name string, module *Module) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating module file '%s': %w", name, err)
	}

	if err := Save(file, module); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// normalize sorts sections and blocks by address, the traversal relies on
// address order.
func normalize(module *Module) {
	sort.Slice(module.Sections, func(i, j int) bool {
		return module.Sections[i].Address < module.Sections[j].Address
	})
	for _, section := range module.Sections {
		sort.Slice(section.Blocks, func(i, j int) bool {
			return section.Blocks[i].Address < section.Blocks[j].Address
		})
	}
}
