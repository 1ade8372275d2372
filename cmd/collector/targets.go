package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"storereviews/internal/app"
)

type targetsFile struct {
	Targets []app.Target `yaml:"targets"`
}

// LoadTargets reads a YAML file of the form:
//
//	targets:
//	  - url: https://play.google.com/store/apps/details?id=com.example
//	    count: 300
//	    stars: 1
//	  - url: https://apps.apple.com/us/app/example/id123
//	    num_reviews: 50
func LoadTargets(path string) ([]app.Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	var f targetsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse targets %s: %w", path, err)
	}
	for i, t := range f.Targets {
		if t.URL == "" {
			return nil, fmt.Errorf("targets %s: entry %d has no url", path, i)
		}
	}
	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("targets %s: no targets", path)
	}
	return f.Targets, nil
}
