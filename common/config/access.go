package config

import (
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var Path = "deployment-repo.yaml"

var instance *MainRepoConfig
var singletonLock = &sync.Once{}
var instanceLock = &sync.RWMutex{}

func reloadConfig() (*MainRepoConfig, error) {
	c := NewDefaultMainConfig()

	// Write a default config if the one given doesn't exist
	info, err := os.Stat(Path)
	exists := err == nil || !os.IsNotExist(err)
	if !exists {
		fmt.Println("Generating new configuration...")
		configBytes, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "error encoding default configuration")
		}

		if err = os.WriteFile(Path, configBytes, 0644); err != nil {
			return nil, errors.Wrapf(err, "error writing default configuration to %s", Path)
		}
	}

	// Get new info about the possible directory after creating
	info, err = os.Stat(Path)
	if err != nil {
		return nil, err
	}

	pathsOrdered := make([]string, 0)
	if info.IsDir() {
		logrus.Info("Config is a directory - loading all files over top of each other")

		files, err := os.ReadDir(Path)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			pathsOrdered = append(pathsOrdered, path.Join(Path, f.Name()))
		}

		sort.Strings(pathsOrdered)
	} else {
		pathsOrdered = append(pathsOrdered, Path)
	}

	for _, p := range pathsOrdered {
		logrus.Info("Loading config file: ", p)
		buffer, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", p)
		}
		if err = yaml.Unmarshal(buffer, &c); err != nil {
			return nil, errors.Wrapf(err, "error parsing config file %s", p)
		}
	}

	if c.Deployments.ParentDir == "" {
		return nil, errors.New("deployments.parentDir must not be empty")
	}
	if c.Deployments.MaxConcurrency < 0 {
		return nil, errors.New("deployments.maxConcurrency must not be negative")
	}

	return &c, nil
}

func Get() *MainRepoConfig {
	singletonLock.Do(func() {
		instanceLock.RLock()
		loaded := instance != nil
		instanceLock.RUnlock()
		if loaded {
			return
		}
		c, err := reloadConfig()
		if err != nil {
			logrus.Fatal(err)
		}
		Set(c)
	})
	instanceLock.RLock()
	defer instanceLock.RUnlock()
	return instance
}

// Set replaces the active configuration. Used by live reloads and by tools that
// build their configuration from flags instead of a file.
func Set(c *MainRepoConfig) {
	instanceLock.Lock()
	defer instanceLock.Unlock()
	instance = c
}
