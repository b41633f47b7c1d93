package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"amanah_backend/internals/helpers/storage"
)

type CleanupOptions struct {
	DryRun bool   `json:"dry_run"`
	Mode   string `json:"mode"`
	// Orphans also removes stored objects that no row references.
	Orphans bool `json:"orphans"`
}

type MissingRef struct {
	Usage
	Action string `json:"action"`
}

type CleanupReport struct {
	DryRun         bool         `json:"dry_run"`
	Mode           string       `json:"mode"`
	Checked        int          `json:"checked"`
	Missing        []MissingRef `json:"missing"`
	Cleared        int          `json:"cleared"`
	DeletedRows    int          `json:"deleted_rows"`
	Orphans        []string     `json:"orphans"`
	DeletedObjects int          `json:"deleted_objects"`
	Errors         []string     `json:"errors"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
}

// Cleanup is a single pass over every reference column: references whose
// object is gone are cleared (or their row deleted), then unreferenced
// objects are optionally removed. Failures are recorded and the pass goes on.
func (s *MediaService) Cleanup(ctx context.Context, opt CleanupOptions) (*CleanupReport, error) {
	if opt.Mode == "" {
		opt.Mode = ModeClear
	}
	if opt.Mode != ModeClear && opt.Mode != ModeDelete {
		return nil, fmt.Errorf("unknown cleanup mode %q", opt.Mode)
	}
	rep := &CleanupReport{
		DryRun:    opt.DryRun,
		Mode:      opt.Mode,
		Missing:   []MissingRef{},
		Orphans:   []string{},
		Errors:    []string{},
		StartedAt: time.Now().UTC(),
	}
	fail := func(err error) {
		rep.Errors = append(rep.Errors, err.Error())
		log.Warn().Err(err).Msg("[MEDIA CLEANUP]")
	}

	referenced := map[string]bool{}
	for _, r := range s.refs() {
		rows, err := s.scan(ctx, r)
		if err != nil {
			fail(fmt.Errorf("scan %s.%s: %w", r.Table, r.Column, err))
			continue
		}
		for _, row := range rows {
			key := s.ownedKey(row.Ref)
			if key == "" {
				continue
			}
			rep.Checked++
			ok, err := s.Store.Exists(ctx, key)
			if err != nil {
				fail(fmt.Errorf("exists %s: %w", key, err))
				referenced[key] = true
				continue
			}
			if ok {
				referenced[key] = true
				if tk := storage.ThumbKeyFor(key); tk != "" {
					referenced[tk] = true
				}
				continue
			}

			action := "clear"
			if opt.Mode == ModeDelete && r.Deletable {
				action = "delete"
			}
			rep.Missing = append(rep.Missing, MissingRef{
				Usage:  Usage{Table: r.Table, Column: r.Column, ID: row.ID, Ref: row.Ref, Key: key},
				Action: action,
			})
			if opt.DryRun {
				continue
			}
			if err := s.fix(ctx, r, row, action); err != nil {
				fail(fmt.Errorf("%s %s.%s id=%s: %w", action, r.Table, r.Column, row.ID, err))
				continue
			}
			if action == "delete" {
				rep.DeletedRows++
			} else {
				rep.Cleared++
			}
		}
	}

	if opt.Orphans && len(rep.Errors) == 0 {
		infos, err := s.list(ctx, "")
		if err != nil {
			fail(fmt.Errorf("list objects: %w", err))
		}
		for _, info := range infos {
			if referenced[info.Key] {
				continue
			}
			rep.Orphans = append(rep.Orphans, info.Key)
			if opt.DryRun {
				continue
			}
			if err := s.Store.Delete(ctx, info.Key); err != nil {
				fail(fmt.Errorf("delete %s: %w", info.Key, err))
				continue
			}
			rep.DeletedObjects++
		}
	}

	rep.FinishedAt = time.Now().UTC()
	log.Info().
		Bool("dry_run", rep.DryRun).
		Str("mode", rep.Mode).
		Int("checked", rep.Checked).
		Int("missing", len(rep.Missing)).
		Int("cleared", rep.Cleared).
		Int("deleted_rows", rep.DeletedRows).
		Int("orphans", len(rep.Orphans)).
		Int("deleted_objects", rep.DeletedObjects).
		Msg("[MEDIA CLEANUP] done")
	return rep, nil
}

func (s *MediaService) fix(ctx context.Context, r Reference, row refRow, action string) error {
	id := pq.QuoteIdentifier(r.IDColumn)
	if action == "delete" {
		q := fmt.Sprintf(`DELETE FROM %s WHERE CAST(%s AS TEXT) = ?`, pq.QuoteIdentifier(r.Table), id)
		return s.DB.WithContext(ctx).Exec(q, row.ID).Error
	}
	col := pq.QuoteIdentifier(r.Column)
	q := fmt.Sprintf(`UPDATE %s SET %s = '' WHERE CAST(%s AS TEXT) = ? AND %s = ?`, pq.QuoteIdentifier(r.Table), col, id, col)
	return s.DB.WithContext(ctx).Exec(q, row.ID, row.Ref).Error
}
