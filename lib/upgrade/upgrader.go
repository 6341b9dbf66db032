package upgrade

import (
	"context"
	"time"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/pki-upgrade/lib/backup"
	"github.com/go-i2p/pki-upgrade/lib/instance"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// StepResult records one scriptlet invocation.
type StepResult struct {
	Version   string
	Index     int
	Scriptlet string
	Message   string
	Instance  string
	BackupDir string
	Duration  time.Duration
	Err       error
}

// Report lists the invocations of a run in execution order.
type Report struct {
	Steps []StepResult
}

// Failed reports whether any invocation failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Upgrader applies a Registry to instances.
type Upgrader struct {
	fs       afero.Fs
	backups  *backup.Store
	registry *Registry
}

// NewUpgrader returns an Upgrader working on fs that saves backups in store.
func NewUpgrader(fs afero.Fs, store *backup.Store, registry *Registry) *Upgrader {
	return &Upgrader{fs: fs, backups: store, registry: registry}
}

// Run applies every registered scriptlet, or only the one called only when it
// is not empty, to instances. It stops at the first failure and returns the
// report so far together with the error.
func (u *Upgrader) Run(ctx context.Context, instances []*instance.Instance, only string) (*Report, error) {
	report := &Report{}
	if only != "" {
		if _, ok := u.registry.Find(only); !ok {
			return report, oops.In("upgrade").With("scriptlet", only).Errorf("unknown scriptlet %q", only)
		}
	}

	for _, v := range u.registry.Versions() {
		for i, s := range v.Scriptlets {
			if only != "" && s.Name() != only {
				continue
			}
			index := i + 1
			log.WithFields(logger.Fields{
				"version":   v.Number,
				"scriptlet": s.Name(),
			}).Info(s.Message())

			for _, inst := range instances {
				if err := ctx.Err(); err != nil {
					return report, oops.In("upgrade").Wrapf(err, "upgrade interrupted")
				}
				step, err := u.runStep(ctx, v.Number, index, s, inst)
				report.Steps = append(report.Steps, step)
				if err != nil {
					return report, err
				}
			}
		}
	}
	return report, nil
}

func (u *Upgrader) runStep(ctx context.Context, version string, index int, s Scriptlet, inst *instance.Instance) (StepResult, error) {
	set := u.backups.Begin(version, index, s.Name(), inst.Name)
	env := &Env{Instance: inst, Fs: u.fs, Backup: set}
	step := StepResult{
		Version:   version,
		Index:     index,
		Scriptlet: s.Name(),
		Message:   s.Message(),
		Instance:  inst.Name,
		BackupDir: set.Dir(),
	}

	start := time.Now()
	err := s.UpgradeInstance(ctx, env)
	step.Duration = time.Since(start)
	if err != nil {
		step.Err = oops.
			In("upgrade").
			With("version", version, "scriptlet", s.Name(), "instance", inst.Name).
			Wrapf(err, "%s/%02d-%s on %s", version, index, s.Name(), inst.Name)
		log.WithError(err).WithFields(logger.Fields{
			"version":   version,
			"scriptlet": s.Name(),
			"instance":  inst.Name,
		}).Error("Upgrade step failed")
		return step, step.Err
	}

	log.WithFields(logger.Fields{
		"version":   version,
		"scriptlet": s.Name(),
		"instance":  inst.Name,
		"duration":  step.Duration,
	}).Debug("Upgrade step finished")
	return step, nil
}
