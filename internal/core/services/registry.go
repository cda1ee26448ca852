package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// ParamKind selects the validation rule of one positional parameter.
type ParamKind int

// Parameter kinds.
const (
	// ParamDrive is a drive or device name. It must not look like a flag.
	ParamDrive ParamKind = iota

	// ParamPositiveNumber is a number greater than zero, passed as text.
	ParamPositiveNumber

	// ParamMode is a dry_run or live token.
	ParamMode

	// ParamFileSystem is one of the supported partition file systems.
	ParamFileSystem

	// ParamJSONDocument is a JSON object passed as its text.
	ParamJSONDocument
)

// ParamSpec describes one positional argument.
type ParamSpec struct {
	Name string
	Kind ParamKind
}

// ModuleSpec binds a capability to its module and ordered parameters.
type ModuleSpec struct {
	Capability domain.Capability
	Module     domain.ModuleName
	Params     []ParamSpec
}

// ParamNames returns the parameter names in positional order.
func (s ModuleSpec) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// Parameter names shared by the specs and their callers.
const (
	ParamDriveName   = "driveName"
	ParamSource      = "source"
	ParamDestination = "destination"
	ParamSize        = "size"
	ParamFSName      = "fileSystem"
	ParamModeName    = "mode"
	ParamMetrics     = "metrics"
)

// DefaultModuleSpecs returns the invocation contract of the managed executable.
// Argument order is part of the contract.
func DefaultModuleSpecs() []ModuleSpec {
	return []ModuleSpec{
		{Capability: domain.CapabilityDetect, Module: domain.ModuleDetect},
		{
			Capability: domain.CapabilityScan,
			Module:     domain.ModuleScan,
			Params:     []ParamSpec{{ParamDriveName, ParamDrive}},
		},
		{
			Capability: domain.CapabilityRepair,
			Module:     domain.ModuleRepair,
			Params:     []ParamSpec{{ParamDriveName, ParamDrive}, {ParamModeName, ParamMode}},
		},
		{
			Capability: domain.CapabilityClone,
			Module:     domain.ModuleClone,
			Params: []ParamSpec{
				{ParamSource, ParamDrive},
				{ParamDestination, ParamDrive},
				{ParamModeName, ParamMode},
			},
		},
		{
			Capability: domain.CapabilityPartition,
			Module:     domain.ModulePartition,
			Params: []ParamSpec{
				{ParamDriveName, ParamDrive},
				{ParamSize, ParamPositiveNumber},
				{ParamFSName, ParamFileSystem},
				{ParamModeName, ParamMode},
			},
		},
		{
			Capability: domain.CapabilityRecommendation,
			Module:     domain.ModuleAI,
			Params:     []ParamSpec{{ParamMetrics, ParamJSONDocument}},
		},
		{Capability: domain.CapabilityLogs, Module: domain.ModuleLogs},
		{
			Capability: domain.CapabilityHealth,
			Module:     domain.ModuleHealth,
			Params:     []ParamSpec{{ParamDriveName, ParamDrive}},
		},
	}
}

// ModuleRegistry maps capabilities to invocation requests.
// It is immutable after construction and safe for concurrent use.
type ModuleRegistry struct {
	specs map[domain.Capability]ModuleSpec
	order []domain.Capability
}

// NewModuleRegistry creates a registry from specs. A later spec for the same
// capability replaces an earlier one.
func NewModuleRegistry(specs ...ModuleSpec) *ModuleRegistry {
	r := &ModuleRegistry{specs: make(map[domain.Capability]ModuleSpec, len(specs))}
	for _, spec := range specs {
		if _, exists := r.specs[spec.Capability]; !exists {
			r.order = append(r.order, spec.Capability)
		}
		r.specs[spec.Capability] = spec
	}
	return r
}

// NewDefaultModuleRegistry creates a registry with DefaultModuleSpecs.
func NewDefaultModuleRegistry() *ModuleRegistry {
	return NewModuleRegistry(DefaultModuleSpecs()...)
}

// Validate checks the registry covers exactly the closed capability set and
// that every spec is well formed. Call it once at startup.
func (r *ModuleRegistry) Validate() error {
	var errs []error
	for _, c := range domain.AllCapabilities() {
		if _, ok := r.specs[c]; !ok {
			errs = append(errs, fmt.Errorf("capability %s has no module", c))
		}
	}
	for _, c := range r.order {
		spec := r.specs[c]
		if !c.IsValid() {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrUnknownCapability, c))
		}
		if spec.Module == "" {
			errs = append(errs, fmt.Errorf("capability %s: module name is empty", c))
		}
		seen := make(map[string]bool, len(spec.Params))
		for _, p := range spec.Params {
			if p.Name == "" {
				errs = append(errs, fmt.Errorf("capability %s: parameter without name", c))
			}
			if seen[p.Name] {
				errs = append(errs, fmt.Errorf("capability %s: duplicate parameter %s", c, p.Name))
			}
			seen[p.Name] = true
		}
	}
	return errors.Join(errs...)
}

// Spec returns the spec of a capability.
func (r *ModuleRegistry) Spec(c domain.Capability) (ModuleSpec, bool) {
	spec, ok := r.specs[c]
	return spec, ok
}

// Capabilities returns the registered capabilities in registration order.
func (r *ModuleRegistry) Capabilities() []domain.Capability {
	out := make([]domain.Capability, len(r.order))
	copy(out, r.order)
	return out
}

// Build validates values and returns the invocation request. No process is
// involved; failures wrap domain.ErrInvalidInput or domain.ErrUnknownCapability.
func (r *ModuleRegistry) Build(c domain.Capability, values map[string]string) (domain.InvocationRequest, error) {
	spec, ok := r.specs[c]
	if !ok {
		return domain.InvocationRequest{}, fmt.Errorf("%w: %s", domain.ErrUnknownCapability, c)
	}

	args := make([]string, 0, len(spec.Params))
	for _, p := range spec.Params {
		arg, err := normaliseParam(p, values[p.Name])
		if err != nil {
			return domain.InvocationRequest{}, err
		}
		args = append(args, arg)
	}

	return domain.InvocationRequest{Capability: c, Module: spec.Module, Args: args}, nil
}

// BuildPositional maps values onto the spec's parameters in order.
func (r *ModuleRegistry) BuildPositional(c domain.Capability, values []string) (domain.InvocationRequest, error) {
	spec, ok := r.specs[c]
	if !ok {
		return domain.InvocationRequest{}, fmt.Errorf("%w: %s", domain.ErrUnknownCapability, c)
	}
	if len(values) != len(spec.Params) {
		return domain.InvocationRequest{}, &domain.ValidationError{
			Field:  "arguments",
			Reason: fmt.Sprintf("%s takes %d (%s), got %d", c, len(spec.Params), strings.Join(spec.ParamNames(), ", "), len(values)),
		}
	}

	named := make(map[string]string, len(values))
	for i, p := range spec.Params {
		named[p.Name] = values[i]
	}
	return r.Build(c, named)
}

// drivePattern accepts device names and paths such as sda, /dev/sda1,
// nvme0n1p2 or C:. Spaces and shell metacharacters are rejected.
var drivePattern = regexp.MustCompile(`^[A-Za-z0-9._/:\\-]+$`)

func normaliseParam(p ParamSpec, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", &domain.ValidationError{Field: p.Name, Reason: "required"}
	}

	switch p.Kind {
	case ParamDrive:
		if strings.HasPrefix(value, "-") {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must not start with '-'"}
		}
		if !drivePattern.MatchString(value) {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must be a drive name or device path"}
		}

	case ParamPositiveNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must be a number"}
		}
		if n <= 0 {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must be positive"}
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil

	case ParamMode:
		if !domain.Mode(value).IsValid() {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must be dry_run or live"}
		}

	case ParamFileSystem:
		if _, ok := domain.ParseFileSystem(value); !ok {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must be one of ext4, ntfs, fat32"}
		}

	case ParamJSONDocument:
		var doc map[string]any
		if err := json.Unmarshal([]byte(value), &doc); err != nil || doc == nil {
			return "", &domain.ValidationError{Field: p.Name, Reason: "must be a JSON object"}
		}
	}

	return value, nil
}
