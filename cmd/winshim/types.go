package main

import (
	"fmt"

	"github.com/function61/gokit/jsonfile"
	"github.com/function61/winshim/pkg/shimcfg"
)

// BatchManifest describes a set of shims to create in one go, so package
// install scripts can declare their shims instead of looping over winshim
// invocations.
type BatchManifest struct {
	// random UUID identifying this manifest; handy for correlating logs of
	// repeated provisioning runs
	BatchUniqueId string     `json:"batch_unique_id"`
	Shims         []ShimSpec `json:"shims"`
}

type ShimSpec struct {
	Path      string `json:"path"`
	Output    string `json:"output,omitempty"`
	Args      string `json:"args,omitempty"`
	Subsystem string `json:"subsystem,omitempty"` // CONSOLE | GUI | empty to infer from the target
	WdType    string `json:"wd_type,omitempty"`
	WdPath    string `json:"wd_path,omitempty"`
}

func (s *ShimSpec) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("shim spec is missing path (output %q)", s.Output)
	}

	if s.Subsystem != "" {
		if _, err := shimcfg.ParseSubsystem(s.Subsystem); err != nil {
			return fmt.Errorf("shim spec %s: %w", s.Path, err)
		}
	}

	if s.WdType != "" {
		if _, err := shimcfg.ParseWdPolicy(s.WdType); err != nil {
			return fmt.Errorf("shim spec %s: %w", s.Path, err)
		}
	}

	return nil
}

func loadBatchManifest(path string) (*BatchManifest, error) {
	manifest := &BatchManifest{}
	if err := jsonfile.Read(path, manifest, true); err != nil {
		return nil, err
	}

	for i := range manifest.Shims {
		if err := manifest.Shims[i].Validate(); err != nil {
			return nil, err
		}
	}

	return manifest, nil
}
