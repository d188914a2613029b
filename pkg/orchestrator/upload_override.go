package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
)

// UploadOverride supplies an upload target for a profile whose document
// omits one, letting deployments ship capture profiles without endpoints and
// inject them at wiring time.
type UploadOverride struct {
	Profile string
	Target  model.UploadTarget
}

// WithUploadOverrides registers upload overrides that run after the model
// builder executes. Overrides are scoped per profile and only applied when
// the built widget lacks an upload target.
func WithUploadOverrides(overrides []UploadOverride) Option {
	cloned := append([]UploadOverride(nil), overrides...)
	return func(o *Orchestrator) {
		if len(cloned) == 0 || o == nil {
			return
		}

		if o.uploadOverrides == nil {
			o.uploadOverrides = make(map[string]model.UploadTarget)
		}

		for _, override := range cloned {
			if err := validateUploadOverride(override); err != nil {
				o.initialiseErr = appendInitialiseError(o.initialiseErr, err)
				continue
			}
			o.uploadOverrides[strings.TrimSpace(override.Profile)] = normalizeUploadTarget(override.Target)
		}
	}
}

func validateUploadOverride(override UploadOverride) error {
	if strings.TrimSpace(override.Profile) == "" {
		return errors.New("orchestrator: upload override missing profile name")
	}
	if strings.TrimSpace(override.Target.Endpoint) == "" {
		return fmt.Errorf("orchestrator: upload override %q missing endpoint", override.Profile)
	}
	return nil
}

// normalizeUploadTarget applies the same defaults the builder uses for
// literal profile endpoints.
func normalizeUploadTarget(target model.UploadTarget) model.UploadTarget {
	out := model.UploadTarget{
		Endpoint: strings.TrimSpace(target.Endpoint),
		Method:   strings.ToUpper(strings.TrimSpace(target.Method)),
		Field:    strings.TrimSpace(target.Field),
	}
	if out.Method == "" {
		out.Method = "POST"
	}
	if out.Field == "" {
		out.Field = "photo"
	}
	return out
}

func (o *Orchestrator) applyUploadOverrides(profileName string, widget *model.WidgetModel) {
	if widget == nil || len(o.uploadOverrides) == 0 {
		return
	}
	if widget.Upload != nil {
		return
	}
	target, ok := o.uploadOverrides[profileName]
	if !ok {
		return
	}
	widget.Upload = &target
}
