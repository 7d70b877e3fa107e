package modifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/willibrandon/dotnetproj/observability"
	"github.com/willibrandon/dotnetproj/version"
)

// CentralPackageManagementMigrator moves per-project package versions into
// Directory.Packages.props.
type CentralPackageManagementMigrator struct {
	logger observability.Logger
}

// NewCentralPackageManagementMigrator creates a migrator. A nil logger discards output.
func NewCentralPackageManagementMigrator(logger observability.Logger) *CentralPackageManagementMigrator {
	return &CentralPackageManagementMigrator{logger: observability.OrNull(logger)}
}

// packageUsage collects the distinct versions a package is referenced at,
// in the order they were first seen.
type packageUsage struct {
	name     string
	versions []string
}

// Migrate enables central package management for the session. Every package
// reference with a version contributes to one PackageVersion entry; a package
// seen at several versions gets the highest. The references keep their
// Include and lose their Version. Changes stay in memory until Save.
func (c *CentralPackageManagementMigrator) Migrate(ctx context.Context, m *SolutionModifier) (err error) {
	ctx, span := observability.StartMigrationSpan(ctx, m.SolutionPath(), len(m.Projects()))
	defer func() {
		observability.EndSpanWithError(span, err)
		switch {
		case err == nil:
			observability.MigrationsTotal.WithLabelValues("success").Inc()
		case errors.Is(err, ErrAlreadyMigrated):
			observability.MigrationsTotal.WithLabelValues("already_migrated").Inc()
		default:
			observability.MigrationsTotal.WithLabelValues("failure").Inc()
		}
	}()

	if m.HasDirectoryPackagesProps() {
		enabled, err := m.DirectoryPackagesProps().GetCentralPackageManagement()
		if err != nil {
			return err
		}
		if enabled {
			return ErrAlreadyMigrated
		}
	}

	usages := c.collect(m)
	props := m.DirectoryPackagesProps()
	if err := props.SetCentralPackageManagement(true); err != nil {
		return err
	}

	versions := props.PackageVersions()
	for _, u := range usages {
		versions.Set(u.name, c.selectVersion(ctx, u))
	}

	for _, p := range m.Projects() {
		p.File.PackageReferences().RemoveAllVersions()
	}

	c.logger.InfoContext(ctx, "Migrated {PackageCount} packages to central package management", len(usages))
	return nil
}

func (c *CentralPackageManagementMigrator) collect(m *SolutionModifier) []*packageUsage {
	var usages []*packageUsage
	byName := map[string]*packageUsage{}

	for _, p := range m.Projects() {
		for _, ref := range p.File.PackageReferences().GetPackageReferences() {
			if !ref.HasVersion() {
				continue
			}
			key := strings.ToLower(ref.Name)
			u, ok := byName[key]
			if !ok {
				u = &packageUsage{name: ref.Name}
				byName[key] = u
				usages = append(usages, u)
			}
			if !containsVersion(u.versions, ref.Version) {
				u.versions = append(u.versions, ref.Version)
			}
		}
	}
	return usages
}

// selectVersion returns the highest version of u. Versions that do not
// parse as NuGet versions or ranges, such as MSBuild property references,
// cannot be ordered; the first one seen is kept in that case.
func (c *CentralPackageManagementMigrator) selectVersion(ctx context.Context, u *packageUsage) string {
	if len(u.versions) == 1 {
		return u.versions[0]
	}

	selected := u.versions[0]
	best, err := version.ParseRequirement(selected)
	for _, v := range u.versions[1:] {
		if err != nil {
			break
		}
		var r *version.Requirement
		r, err = version.ParseRequirement(v)
		if err == nil && r.Compare(best) > 0 {
			best, selected = r, v
		}
	}
	if err != nil {
		selected = u.versions[0]
	}

	c.logger.WarnContext(ctx, "Nuget {Package} added to projects with different versions: {Versions}", u.name, strings.Join(u.versions, ", "))
	observability.VersionConflictsTotal.Inc()
	observability.RecordVersionConflict(ctx, u.name, selected, u.versions)
	return selected
}

func containsVersion(versions []string, v string) bool {
	for _, existing := range versions {
		if existing == v {
			return true
		}
	}
	return false
}

// MigrateSolution opens the solution at path, migrates it and saves the result.
func MigrateSolution(ctx context.Context, factory *Factory, path string) error {
	m, err := factory.CreateContext(ctx, path)
	if err != nil {
		return err
	}
	if err := NewCentralPackageManagementMigrator(factory.logger).Migrate(ctx, m); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", path, err)
	}
	return m.SaveContext(ctx)
}
