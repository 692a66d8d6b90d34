// Package cache holds the redis-backed read models derived from cierres.
// The source of truth is always the cierres_turno table: a cached view is
// only ever served until the next successful save invalidates it, and every
// miss recomputes from persisted rows.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/juanfinocchiaro/hoppiness-hub-platform-sub010/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyCierresDia   = "cierres:dia:%s:%s"       // sucursal_id, fecha
	keyCierreUno    = "cierres:uno:%s:%s:%s"    // sucursal_id, fecha, turno
	keyResumenVer   = "resumen:marca:ver"       // version token, bumped on save
	keyResumenRango = "resumen:marca:v%d:%s:%s" // version, desde, hasta

	ttlCierres = 5 * time.Minute
	ttlResumen = time.Minute
)

// ReadModels is the invalidation contract the write path depends on.
// Summary ranges are open-ended, so instead of enumerating range keys the
// brand summary is keyed by a version token that InvalidarCierre bumps;
// stale versions simply expire.
type ReadModels interface {
	GetCierresDia(ctx context.Context, sucursalID uuid.UUID, fecha string) ([]dto.CierreResponse, bool)
	SetCierresDia(ctx context.Context, sucursalID uuid.UUID, fecha string, cierres []dto.CierreResponse)
	GetCierre(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) (*dto.CierreResponse, bool)
	SetCierre(ctx context.Context, sucursalID uuid.UUID, fecha, turno string, c *dto.CierreResponse)
	GetResumen(ctx context.Context, desde, hasta string) (*dto.ResumenMarcaResponse, bool)
	SetResumen(ctx context.Context, desde, hasta string, r *dto.ResumenMarcaResponse)
	InvalidarCierre(ctx context.Context, sucursalID uuid.UUID, fecha, turno string)
}

type redisReadModels struct{ rdb *redis.Client }

func NewReadModels(rdb *redis.Client) ReadModels { return &redisReadModels{rdb: rdb} }

func (c *redisReadModels) GetCierresDia(ctx context.Context, sucursalID uuid.UUID, fecha string) ([]dto.CierreResponse, bool) {
	var cierres []dto.CierreResponse
	if !c.get(ctx, fmt.Sprintf(keyCierresDia, sucursalID, fecha), &cierres) {
		return nil, false
	}
	return cierres, true
}

func (c *redisReadModels) SetCierresDia(ctx context.Context, sucursalID uuid.UUID, fecha string, cierres []dto.CierreResponse) {
	c.set(ctx, fmt.Sprintf(keyCierresDia, sucursalID, fecha), cierres, ttlCierres)
}

func (c *redisReadModels) GetCierre(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) (*dto.CierreResponse, bool) {
	var cierre dto.CierreResponse
	if !c.get(ctx, fmt.Sprintf(keyCierreUno, sucursalID, fecha, turno), &cierre) {
		return nil, false
	}
	return &cierre, true
}

func (c *redisReadModels) SetCierre(ctx context.Context, sucursalID uuid.UUID, fecha, turno string, cierre *dto.CierreResponse) {
	if cierre == nil {
		return
	}
	c.set(ctx, fmt.Sprintf(keyCierreUno, sucursalID, fecha, turno), cierre, ttlCierres)
}

func (c *redisReadModels) GetResumen(ctx context.Context, desde, hasta string) (*dto.ResumenMarcaResponse, bool) {
	var resumen dto.ResumenMarcaResponse
	if !c.get(ctx, c.resumenKey(ctx, desde, hasta), &resumen) {
		return nil, false
	}
	return &resumen, true
}

func (c *redisReadModels) SetResumen(ctx context.Context, desde, hasta string, r *dto.ResumenMarcaResponse) {
	if r == nil {
		return
	}
	c.set(ctx, c.resumenKey(ctx, desde, hasta), r, ttlResumen)
}

// InvalidarCierre drops the daily list and single lookup for the saved
// identity, and bumps the summary version so every cached range goes stale.
func (c *redisReadModels) InvalidarCierre(ctx context.Context, sucursalID uuid.UUID, fecha, turno string) {
	c.rdb.Del(ctx,
		fmt.Sprintf(keyCierresDia, sucursalID, fecha),
		fmt.Sprintf(keyCierreUno, sucursalID, fecha, turno),
	)
	c.rdb.Incr(ctx, keyResumenVer)
}

func (c *redisReadModels) resumenKey(ctx context.Context, desde, hasta string) string {
	ver, err := c.rdb.Get(ctx, keyResumenVer).Int64()
	if err != nil && err != redis.Nil {
		ver = -1 // unreachable version: forces a miss while redis is degraded
	}
	return fmt.Sprintf(keyResumenRango, ver, desde, hasta)
}

// get unmarshals a cached JSON value; any error counts as a miss — the caller
// falls through to the source of truth.
func (c *redisReadModels) get(ctx context.Context, key string, out interface{}) bool {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *redisReadModels) set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, ttl)
}
