package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// SceneInfo represents a renderable scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Value for the scene parameter
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "model"
	FilePath    string `json:"filePath"`    // Path to the model file (model type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtinGroup = "Built-in Scenes"
	modelGroup   = "Models"
)

// ListBuiltinScenes describes the scenes accepted by Create
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, name := range BuiltinSceneNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtinScenes[name].description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListModels scans dir for mesh files and returns them sorted by display name.
// A missing directory yields an empty list.
func ListModels(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan models directory: %w", err)
	}

	models := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !loaders.IsMeshFile(entry.Name()) {
			continue
		}
		info, err := ParseModelMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		models = append(models, info)
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].DisplayName < models[j].DisplayName
	})
	return models, nil
}

// ParseModelMetadata extracts metadata from the leading "#" comments of a mesh file.
// Recognized keys are "# Name:", "# Description:" and "# Group:". Binary files and
// files without comments get fallback values derived from the file name.
func ParseModelMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          filename,
		DisplayName: titleCase(nameWithoutExt),
		Group:       modelGroup,
		Type:        "model",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open model %s: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Name:"); ok {
			info.DisplayName = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Group:"); ok {
			info.Group = strings.TrimSpace(value)
		}
	}

	// Long binary lines are not metadata
	if err := scanner.Err(); err != nil && err != bufio.ErrTooLong {
		return info, fmt.Errorf("failed to read model %s: %w", filePath, err)
	}
	return info, nil
}

// ListAllScenes returns the built-in scenes and the models found in modelsDir,
// grouped by category
func ListAllScenes(modelsDir string) (ScenesResponse, error) {
	var response ScenesResponse

	models, err := ListModels(modelsDir)
	if err != nil {
		return response, fmt.Errorf("failed to list models: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), models...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "stanford-bunny" -> "Stanford Bunny"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
