package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
)

// ErrUnknownProcessType indicates a process type outside the known set.
var ErrUnknownProcessType = errors.New("unknown process type")

// ErrInvalidConfig indicates a configuration failed validation.
var ErrInvalidConfig = errors.New("invalid process config")

// Resolver answers the configuration for a process type: the saved one when
// present, the built-in default otherwise.
type Resolver struct {
	store    Store
	validate *validator.Validate
}

// NewResolver returns a resolver over store.
func NewResolver(store Store) *Resolver {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Resolver{store: store, validate: v}
}

// Get returns the configuration for t.
func (r *Resolver) Get(t models.ProcessType) (models.ProcessConfig, error) {
	def, ok := models.DefaultConfig(t)
	if !ok {
		return models.ProcessConfig{}, fmt.Errorf("%w: %q", ErrUnknownProcessType, t)
	}

	saved, err := r.store.Load()
	if err != nil {
		return models.ProcessConfig{}, err
	}
	cfg, ok := saved[t]
	if !ok {
		return def, nil
	}
	if err := r.Validate(cfg); err != nil {
		return models.ProcessConfig{}, err
	}
	return cfg, nil
}

// All returns the effective configuration of every known process type.
func (r *Resolver) All() ([]models.ProcessConfig, error) {
	var out []models.ProcessConfig
	for _, t := range models.ProcessTypes {
		cfg, err := r.Get(t)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Put validates cfg and saves it for its process type.
func (r *Resolver) Put(cfg models.ProcessConfig) error {
	if err := r.Validate(cfg); err != nil {
		return err
	}
	saved, err := r.store.Load()
	if err != nil {
		return err
	}
	saved[cfg.ProcessType] = cfg
	return r.store.Save(saved)
}

// Reset drops the saved configuration for t so the default applies again.
func (r *Resolver) Reset(t models.ProcessType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProcessType, t)
	}
	saved, err := r.store.Load()
	if err != nil {
		return err
	}
	if _, ok := saved[t]; !ok {
		return nil
	}
	delete(saved, t)
	return r.store.Save(saved)
}

// Validate checks column bounds and the process type of cfg.
func (r *Resolver) Validate(cfg models.ProcessConfig) error {
	err := r.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from box_column", fe.Field())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
