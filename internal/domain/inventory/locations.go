package inventory

import (
	"strings"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// LocationPathSeparator separador entre niveles de una ruta de ubicación.
const LocationPathSeparator = " > "

// LocationPaths resuelve la ruta completa "Hospital > Armario A > Estante 2" de cada ubicación.
// Un padre desconocido o un ciclo corta la ruta en ese punto.
func LocationPaths(locs []*entity.Location) map[string]string {
	byID := make(map[string]*entity.Location, len(locs))
	for _, l := range locs {
		if l != nil {
			byID[l.ID] = l
		}
	}

	paths := make(map[string]string, len(byID))
	for id := range byID {
		var parts []string
		seen := make(map[string]bool)
		for cur := byID[id]; cur != nil && !seen[cur.ID]; cur = byID[cur.ParentID] {
			seen[cur.ID] = true
			parts = append(parts, cur.Name)
			if cur.ParentID == "" {
				break
			}
		}
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
		paths[id] = strings.Join(parts, LocationPathSeparator)
	}
	return paths
}

// CreatesCycle indica si asignar newParentID como padre de id produciría un ciclo.
func CreatesCycle(locs []*entity.Location, id, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	if newParentID == id {
		return true
	}
	parentOf := make(map[string]string, len(locs))
	for _, l := range locs {
		if l != nil {
			parentOf[l.ID] = l.ParentID
		}
	}
	seen := make(map[string]bool)
	for cur := newParentID; cur != "" && !seen[cur]; cur = parentOf[cur] {
		if cur == id {
			return true
		}
		seen[cur] = true
	}
	return false
}
