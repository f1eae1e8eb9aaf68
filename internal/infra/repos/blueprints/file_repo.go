package blueprints

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"exportgen/internal/domain"
)

type Repository interface {
	List() ([]*domain.Blueprint, error)
	Get(id string) (*domain.Blueprint, error)
	GetByPath(path string) (*domain.Blueprint, error)
}

type FileRepository struct {
	baseDir string
}

func NewFileRepository(baseDir string) *FileRepository {
	return &FileRepository{baseDir: baseDir}
}

func (r *FileRepository) List() ([]*domain.Blueprint, error) {
	if _, err := os.Stat(r.baseDir); os.IsNotExist(err) {
		return []*domain.Blueprint{}, nil
	}

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, err
	}

	blueprints := make([]*domain.Blueprint, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		path := filepath.Join(r.baseDir, entry.Name())
		bp, err := r.load(path)
		if err != nil {
			continue
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

func (r *FileRepository) Get(id string) (*domain.Blueprint, error) {
	blueprints, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, bp := range blueprints {
		if bp.ID == id || bp.Name == id {
			return bp, nil
		}
	}

	return nil, fmt.Errorf("blueprint not found: %s", id)
}

func (r *FileRepository) GetByPath(path string) (*domain.Blueprint, error) {
	return r.load(path)
}

func (r *FileRepository) load(path string) (*domain.Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bp domain.Blueprint
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &bp)
	} else {
		err = yaml.Unmarshal(data, &bp)
	}
	if err != nil {
		return nil, err
	}

	if bp.ID == "" {
		bp.ID = filepath.Base(path)
	}

	return &bp, nil
}
