// Package file implementa los stores sobre archivos planos en disco:
// arrays JSON reescritos completos en cada save (last-writer-wins) y un
// ledger de cupos orientado a líneas. Un archivo ausente es un dataset
// vacío; uno corrupto degrada a vacío en vez de propagar el error.
package file

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// loadJSON carga un array JSON en v. Archivo faltante o ilegible => v queda
// como está (dataset vacío); nunca es fatal.
func loadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return nil // ilegible: degradar a vacío
	}
	if err := json.Unmarshal(b, v); err != nil {
		// JSON roto: mismo tratamiento que ausente.
		return nil
	}
	return nil
}

// saveJSON reescribe el archivo completo, pretty-printed.
func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
