package prefs

import (
	"encoding/json"
	"fmt"
)

// legacyFiltersTable tabla a la que se asignan los filtros planos de la versión 1.
const legacyFiltersTable = "levels"

// migration lleva un blob de la versión N a la N+1.
type migration func(map[string]interface{})

// migrations[N] migra desde la versión N. Los blobs sin campo version son versión 0.
var migrations = map[int]migration{
	0: migrateV0,
	1: migrateV1,
}

// migrateV0 renombra las claves camelCase del formato original.
func migrateV0(m map[string]interface{}) {
	rename := map[string]string{
		"sidebarOpen":       "sidebar_open",
		"collapsedSections": "collapsed_sections",
	}
	for from, to := range rename {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
		}
	}
	if _, ok := m["theme"]; !ok {
		m["theme"] = ThemeLight
	}
	if _, ok := m["sidebar_open"]; !ok {
		m["sidebar_open"] = true
	}
}

// migrateV1 pasa de filtros planos {clave: valor} a filtros por tabla.
func migrateV1(m map[string]interface{}) {
	flat, ok := m["filters"].(map[string]interface{})
	if !ok {
		return
	}
	perTable := map[string]interface{}{}
	legacy := map[string]interface{}{}
	for k, v := range flat {
		if nested, ok := v.(map[string]interface{}); ok {
			perTable[k] = nested
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			legacy[k] = s
		}
	}
	if len(legacy) > 0 {
		perTable[legacyFiltersTable] = legacy
	}
	m["filters"] = perTable
}

// decode interpreta el blob guardado y lo lleva a CurrentVersion. migrated indica si hubo migración.
func decode(raw string) (Settings, bool, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return Settings{}, false, fmt.Errorf("prefs: blob inválido: %w", err)
	}
	version := 0
	if v, ok := m["version"].(float64); ok {
		version = int(v)
	}
	if version > CurrentVersion {
		return Settings{}, false, fmt.Errorf("prefs: versión %d posterior a la soportada %d", version, CurrentVersion)
	}
	migrated := version < CurrentVersion
	for ; version < CurrentVersion; version++ {
		migrations[version](m)
	}
	m["version"] = CurrentVersion

	normalized, err := json.Marshal(m)
	if err != nil {
		return Settings{}, false, fmt.Errorf("prefs: normalizar: %w", err)
	}
	s := Defaults()
	if err := json.Unmarshal(normalized, &s); err != nil {
		return Settings{}, false, fmt.Errorf("prefs: decodificar: %w", err)
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		s.Theme = ThemeLight
	}
	if s.CollapsedSections == nil {
		s.CollapsedSections = []string{}
	}
	if s.Filters == nil {
		s.Filters = map[string]map[string]string{}
	}
	if s.Sort == nil {
		s.Sort = map[string]SortPref{}
	}
	return s, migrated, nil
}
