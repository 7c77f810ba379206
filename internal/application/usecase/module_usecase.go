package usecase

import (
	"context"
	"fmt"
	"strings"
)

// Módulos opcionales del panel (integraciones de ML y visión).
const (
	ModuleForecasting = "forecasting"
	ModuleVision      = "vision"
)

// ModuleService informa qué módulos opcionales están habilitados en el despliegue.
// Es el único punto de la aplicación que conoce la lista de módulos activos.
type ModuleService struct {
	enabled map[string]bool
}

// NewModuleService construye el servicio a partir de la lista configurada (ej. "forecasting,vision").
func NewModuleService(modules []string) *ModuleService {
	enabled := make(map[string]bool, len(modules))
	for _, m := range modules {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			enabled[m] = true
		}
	}
	return &ModuleService{enabled: enabled}
}

// HasActiveModule informa si el módulo está habilitado.
func (s *ModuleService) HasActiveModule(_ context.Context, moduleName string) (bool, error) {
	if moduleName == "" {
		return false, fmt.Errorf("module: moduleName es obligatorio")
	}
	return s.enabled[strings.ToLower(moduleName)], nil
}
