// Package moderation contiene los helpers compartidos por los comandos de
// moderación: permisos, duraciones, embeds y el manejo del rol de silencio.
package moderation

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration convierte un texto de duración libre ("30s", "5m", "1h",
// "2d") a segundos. Un número sin sufijo se interpreta como minutos.
// Devuelve ok=false para entradas inválidas o no positivas.
func ParseDuration(input string) (int64, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, false
	}

	multiplier := int64(60) // por defecto minutos
	digits := input
	switch input[len(input)-1] {
	case 's':
		multiplier = 1
		digits = input[:len(input)-1]
	case 'm':
		multiplier = 60
		digits = input[:len(input)-1]
	case 'h':
		multiplier = 3600
		digits = input[:len(input)-1]
	case 'd':
		multiplier = 86400
		digits = input[:len(input)-1]
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}

	seconds := value * multiplier
	if seconds <= 0 {
		return 0, false
	}
	return seconds, true
}

// FormatDuration formatea segundos a texto corto legible (30s, 5m, 1h, 2d).
func FormatDuration(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh", seconds/3600)
	default:
		return fmt.Sprintf("%dd", seconds/86400)
	}
}

// SanitizeReason colapsa espacios en blanco y trunca la razón a maxReasonLen.
// Una razón vacía se reemplaza por el texto por defecto.
func SanitizeReason(reason string) string {
	const maxReasonLen = 1000

	sanitized := strings.Join(strings.Fields(reason), " ")
	if sanitized == "" {
		return "Sin razón especificada"
	}
	if len(sanitized) > maxReasonLen {
		sanitized = sanitized[:maxReasonLen-3] + "..."
	}
	return sanitized
}

// ParseUserID convierte un ID de Discord (texto) a su valor numérico.
func ParseUserID(id string) (int64, error) {
	value, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ID de usuario inválido: %q", id)
	}
	return value, nil
}
