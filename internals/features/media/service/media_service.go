// Package service inspects and sweeps stored media against the rows that
// reference it.
package service

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/helpers/storage"
)

const (
	ModeClear  = "clear"
	ModeDelete = "delete"
)

type MediaService struct {
	DB    *gorm.DB
	Store storage.Store
	// Refs defaults to References.
	Refs []Reference
}

func NewMediaService(db *gorm.DB, store storage.Store) *MediaService {
	return &MediaService{DB: db, Store: store, Refs: References}
}

// Usage is one row that points at an object.
type Usage struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	ID     string `json:"id"`
	Ref    string `json:"ref"`
	Key    string `json:"key"`
}

type refRow struct {
	ID  string
	Ref string
}

func (s *MediaService) refs() []Reference {
	if len(s.Refs) == 0 {
		return References
	}
	return s.Refs
}

func (s *MediaService) scan(ctx context.Context, r Reference) ([]refRow, error) {
	q := fmt.Sprintf(`SELECT CAST(%s AS TEXT) AS id, %s AS ref FROM %s WHERE %s IS NOT NULL AND %s <> ''`,
		pq.QuoteIdentifier(r.IDColumn), pq.QuoteIdentifier(r.Column), pq.QuoteIdentifier(r.Table),
		pq.QuoteIdentifier(r.Column), pq.QuoteIdentifier(r.Column))
	var rows []refRow
	if err := s.DB.WithContext(ctx).Raw(q).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MediaService) ownedKey(ref string) string {
	return storage.OwnedKey(s.Store, ref)
}

// Usages walks every reference column. Rows whose reference is not in this
// store are skipped.
func (s *MediaService) Usages(ctx context.Context) ([]Usage, error) {
	var out []Usage
	for _, r := range s.refs() {
		if !s.DB.Migrator().HasTable(r.Table) {
			continue
		}
		rows, err := s.scan(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("scan %s.%s: %w", r.Table, r.Column, err)
		}
		for _, row := range rows {
			key := s.ownedKey(row.Ref)
			if key == "" {
				continue
			}
			out = append(out, Usage{Table: r.Table, Column: r.Column, ID: row.ID, Ref: row.Ref, Key: key})
		}
	}
	return out, nil
}

// UsageOf returns the rows referencing ref (URL, key or filename).
func (s *MediaService) UsageOf(ctx context.Context, ref string) (string, []Usage, error) {
	key := s.Store.KeyFromReference(ref)
	if key == "" {
		return "", nil, nil
	}
	all, err := s.Usages(ctx)
	if err != nil {
		return key, nil, err
	}
	out := []Usage{}
	for _, u := range all {
		if u.Key == key || storage.ThumbKeyFor(u.Key) == key {
			out = append(out, u)
		}
	}
	return key, out, nil
}

// Removable reports whether the object behind ref may be deleted: it must
// live in this store and no row may still reference it.
func (s *MediaService) Removable(ctx context.Context, ref string) (string, bool) {
	key := s.ownedKey(ref)
	if key == "" {
		return "", false
	}
	_, used, err := s.UsageOf(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("media usage lookup failed, keeping object")
		return key, false
	}
	return key, len(used) == 0
}

// Object is a stored object with the number of rows using it.
type Object struct {
	storage.ObjectInfo
	UsedBy int `json:"used_by"`
}

// Objects lists stored objects under prefix ("" = images/ and videos/).
func (s *MediaService) Objects(ctx context.Context, prefix string) ([]Object, error) {
	infos, err := s.list(ctx, prefix)
	if err != nil {
		return nil, err
	}
	counts, err := s.usageCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Object, 0, len(infos))
	for _, info := range infos {
		out = append(out, Object{ObjectInfo: info, UsedBy: counts[info.Key]})
	}
	return out, nil
}

func (s *MediaService) list(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if prefix != "" {
		return s.Store.List(ctx, prefix)
	}
	var out []storage.ObjectInfo
	for _, p := range []string{constants.ImagePrefix, constants.VideoPrefix} {
		infos, err := s.Store.List(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, infos...)
	}
	return out, nil
}

// usageCounts counts references per key; a thumbnail counts as used when
// its parent is.
func (s *MediaService) usageCounts(ctx context.Context) (map[string]int, error) {
	usages, err := s.Usages(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(usages)*2)
	for _, u := range usages {
		counts[u.Key]++
		if tk := storage.ThumbKeyFor(u.Key); tk != "" && tk != u.Key {
			counts[tk]++
		}
	}
	return counts, nil
}

// DeleteObject removes key (and its thumbnail) unless rows still use it
// and force is false. It returns the blocking usages.
func (s *MediaService) DeleteObject(ctx context.Context, key string, force bool) ([]Usage, error) {
	if !force {
		_, used, err := s.UsageOf(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(used) > 0 {
			return used, nil
		}
	}
	ok, err := s.Store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, storage.ErrNotFound
	}
	storage.DeleteReferences(ctx, s.Store, key)
	return nil, nil
}
