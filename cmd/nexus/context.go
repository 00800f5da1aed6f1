package main

import (
	"fmt"
	"os"
	"os/user"
	"strings"
	"sync"

	"nexus/internal/config"
	"nexus/internal/directory"
	"nexus/internal/store"
)

type commandContext struct {
	configFlag *string
	actorFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	storeOnce sync.Once
	store     *store.Store
	storeErr  error
}

func newCommandContext(configFlag, actorFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		actorFlag:  actorFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureStore() (*store.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		s, err := store.Open(cfg.Paths.RootDir, cfg.Pipeline.Situations)
		if err != nil {
			c.storeErr = fmt.Errorf("open record store: %w", err)
			return
		}
		c.store = s
	})
	return c.store, c.storeErr
}

// actor resolves the name recorded in audit history entries: the --actor
// flag when given, the OS login otherwise.
func (c *commandContext) actor() string {
	if c.actorFlag != nil {
		if name := strings.TrimSpace(*c.actorFlag); name != "" {
			return name
		}
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "desconhecido"
}

// ensureDirectory loads the login sheet configured in paths.users_csv.
func (c *commandContext) ensureDirectory() (*directory.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(cfg.Paths.UsersCSV)
	if path == "" {
		return nil, fmt.Errorf("paths.users_csv is not configured; set it to the shared login sheet")
	}
	svc := directory.New(path)
	if err := svc.Load(); err != nil {
		return nil, fmt.Errorf("load users sheet: %w", err)
	}
	return svc, nil
}
