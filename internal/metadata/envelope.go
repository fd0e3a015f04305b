package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is the current envelope schema. Readers reject envelopes
// written with any other version instead of guessing at their layout.
const SchemaVersion uint16 = 1

// ModuleEnvelope is the on-disk unit of serialized metadata: one module's
// declaration records plus the string table and module-level requirement
// table they reference.
type ModuleEnvelope struct {
	Schema      uint16
	ModuleName  string
	ToolVersion string

	// Strings is the string table; record name fields index into it.
	Strings []string

	Classes    []*ClassRecord
	Functions  []*FunctionRecord
	Properties []*PropertyRecord

	// TypeTable and VersionRequirementTable serve the top-level records,
	// which do not own scope-local tables of their own.
	TypeTable               []*TypeRecord
	VersionRequirementTable []VersionRequirementRecord
}

// WriteModule encodes an envelope to w. The written form carries the
// current schema; the caller's envelope is left untouched.
func WriteModule(w io.Writer, env *ModuleEnvelope) error {
	stamped := *env
	stamped.Schema = SchemaVersion
	if err := msgpack.NewEncoder(w).Encode(&stamped); err != nil {
		return fmt.Errorf("metadata: encoding module %s: %w", env.ModuleName, err)
	}
	return nil
}

// ReadModule decodes an envelope from r, rejecting unknown schemas.
func ReadModule(r io.Reader) (*ModuleEnvelope, error) {
	var env ModuleEnvelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("metadata: decoding module: %w", err)
	}
	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("metadata: unsupported schema %d (want %d)", env.Schema, SchemaVersion)
	}
	return &env, nil
}

// WriteModuleFile writes an envelope atomically: encode to a temp file in
// the target directory, then rename over the destination.
func WriteModuleFile(path string, env *ModuleEnvelope) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := WriteModule(f, env); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadModuleFile reads an envelope from disk. Returns os.ErrNotExist
// unwrapped-compatible errors for missing files.
func ReadModuleFile(path string) (*ModuleEnvelope, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("metadata: opening %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadModule(f)
}
