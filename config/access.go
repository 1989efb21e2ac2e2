package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed access.yaml
var defaultAccessPolicy []byte

// AccessPolicy lists, per portal system, the routes a session of that
// system may call.
type AccessPolicy struct {
	Version int                     `yaml:"version"`
	Systems map[string]SystemAccess `yaml:"systems"`
}

type SystemAccess struct {
	Routes []RouteAccess `yaml:"routes"`
}

type RouteAccess struct {
	Path    string   `yaml:"path"`
	Methods []string `yaml:"methods"`
}

func ParseAccessPolicyYAML(b []byte) (AccessPolicy, error) {
	var p AccessPolicy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return AccessPolicy{}, err
	}
	if p.Version != 1 {
		return AccessPolicy{}, errors.New("access policy: unsupported version")
	}
	if len(p.Systems) == 0 {
		return AccessPolicy{}, errors.New("access policy: missing systems")
	}
	for system, access := range p.Systems {
		for _, route := range access.Routes {
			if route.Path == "" || len(route.Methods) == 0 {
				return AccessPolicy{}, fmt.Errorf("access policy: %s has a route without path or methods", system)
			}
		}
	}
	return p, nil
}

// LoadAccessPolicy reads the policy at path, or the built-in one when path
// is empty.
func LoadAccessPolicy(path string) (AccessPolicy, error) {
	if path == "" {
		return ParseAccessPolicyYAML(defaultAccessPolicy)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return AccessPolicy{}, err
	}
	return ParseAccessPolicyYAML(b)
}
