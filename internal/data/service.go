package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/chirag7gaming/my-code/internal/model"
	"github.com/chirag7gaming/my-code/internal/store"
)

// Service owns the canonical in-memory projects and standalone-files
// collections plus the local-mode flag, and is the only component that
// mutates them. Every mutation is persisted to the preference store
// before it is installed in memory, so callers always observe either
// the committed state or the previous one.
//
// All operations are serialized by a single mutex; accessors hand out
// copies so callers can never alias the canonical collections.
type Service struct {
	mu         sync.Mutex
	kv         store.KV
	projects   []model.Project
	standalone []model.File
	localMode  bool
	subs       []chan struct{}
}

// NewService creates a Service over the given key-value store. The
// in-memory state starts empty; call Load to populate it.
func NewService(kv store.KV) *Service {
	return &Service{kv: kv}
}

// Subscribe returns a channel that receives a signal after every
// state change (mutation, load, or reset). The channel has a buffer
// of one; signals coalesce rather than queue.
func (s *Service) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

// notifyLocked signals all subscribers without blocking. Callers must
// hold s.mu.
func (s *Service) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Load replaces the in-memory state with the contents of the store.
// Absent keys mean a first run and yield empty collections. If a
// stored collection fails to decode, the whole in-memory state is
// reset to empty and the returned error wraps ErrCorruptStore; the
// caller reports it ("failed to load, starting fresh") instead of
// crashing. A plain storage read failure leaves the previous state
// intact.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	localMode, _, err := s.kv.GetBool(ctx, store.KeyLocalMode)
	if err != nil {
		return fmt.Errorf("loading local-mode flag: %w", err)
	}

	projectsRaw, haveProjects, err := s.kv.GetString(ctx, store.KeyProjects)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	filesRaw, haveFiles, err := s.kv.GetString(ctx, store.KeyFiles)
	if err != nil {
		return fmt.Errorf("loading files: %w", err)
	}

	var projects []model.Project
	var files []model.File

	if haveProjects {
		if err := json.Unmarshal([]byte(projectsRaw), &projects); err != nil {
			s.projects = nil
			s.standalone = nil
			s.localMode = localMode
			s.notifyLocked()
			return fmt.Errorf("decoding projects: %v: %w", err, ErrCorruptStore)
		}
	}
	if haveFiles {
		if err := json.Unmarshal([]byte(filesRaw), &files); err != nil {
			s.projects = nil
			s.standalone = nil
			s.localMode = localMode
			s.notifyLocked()
			return fmt.Errorf("decoding files: %v: %w", err, ErrCorruptStore)
		}
	}

	s.projects = projects
	s.standalone = files
	s.localMode = localMode
	s.notifyLocked()
	return nil
}

// Save persists the current in-memory state. The in-memory state is
// never modified by a save; a write failure is reported and nothing
// is retried.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeState(ctx, s.projects, s.standalone, s.localMode)
}

// writeState serializes and persists the given state. Callers must
// hold s.mu.
func (s *Service) writeState(ctx context.Context, projects []model.Project, files []model.File, localMode bool) error {
	projectsJSON, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("encoding files: %w", err)
	}

	if err := s.kv.SetString(ctx, store.KeyProjects, string(projectsJSON)); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	if err := s.kv.SetString(ctx, store.KeyFiles, string(filesJSON)); err != nil {
		return fmt.Errorf("saving files: %w", err)
	}
	if err := s.kv.SetBool(ctx, store.KeyLocalMode, localMode); err != nil {
		return fmt.Errorf("saving local-mode flag: %w", err)
	}
	return nil
}

// commit persists the candidate state and, only on success, installs
// it as the canonical in-memory state. Callers must hold s.mu.
func (s *Service) commit(ctx context.Context, projects []model.Project, files []model.File, localMode bool) error {
	if err := s.writeState(ctx, projects, files, localMode); err != nil {
		return err
	}
	s.projects = projects
	s.standalone = files
	s.localMode = localMode
	s.notifyLocked()
	return nil
}

// Projects returns a copy of the project collection.
func (s *Service) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProjects(s.projects)
}

// StandaloneFiles returns a copy of the standalone-files collection.
func (s *Service) StandaloneFiles() []model.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFiles(s.standalone)
}

// LocalMode reports whether the user opted into on-device-only storage.
func (s *Service) LocalMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localMode
}

// SetLocalMode flips the local-mode flag and persists it with the rest
// of the state.
func (s *Service) SetLocalMode(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, s.projects, s.standalone, enabled)
}

// CreateFile allocates a new file with a unique ID and a fresh
// lastEdit stamp. With an empty projectID the file joins the
// standalone collection; otherwise it is appended to that project's
// file list and the project's lastModified is refreshed. The change is
// persisted before it becomes visible.
func (s *Service) CreateFile(ctx context.Context, name, content, projectID string) (model.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := model.File{
		ID:       uuid.New().String(),
		Name:     name,
		Content:  content,
		LastEdit: model.Timestamp(),
	}

	projects := copyProjects(s.projects)
	files := copyFiles(s.standalone)

	if projectID == "" {
		files = append(files, file)
	} else {
		idx := projectIndex(projects, projectID)
		if idx < 0 {
			return model.File{}, fmt.Errorf("creating file in project %s: %w", projectID, ErrProjectNotFound)
		}
		projects[idx].Files = append(projects[idx].Files, file)
		projects[idx].LastModified = model.Timestamp()
	}

	if err := s.commit(ctx, projects, files, s.localMode); err != nil {
		return model.File{}, fmt.Errorf("creating file %s: %w", name, err)
	}
	return file, nil
}

// UpdateFile mutates a file's name and content in place and refreshes
// its lastEdit stamp. The file is looked up in the exact container the
// caller names: the standalone collection when projectID is empty,
// otherwise that project's file list.
func (s *Service) UpdateFile(ctx context.Context, fileID, projectID, name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := copyProjects(s.projects)
	files := copyFiles(s.standalone)

	target, err := findFile(projects, files, fileID, projectID)
	if err != nil {
		return fmt.Errorf("updating file %s: %w", fileID, err)
	}
	target.Name = name
	target.Content = content
	target.LastEdit = model.Timestamp()

	if err := s.commit(ctx, projects, files, s.localMode); err != nil {
		return fmt.Errorf("updating file %s: %w", fileID, err)
	}
	return nil
}

// DeleteFile removes a file from the exact container the caller names.
// Naming the wrong container is an error, not a search: standalone and
// project-owned files live in disjoint collections and the caller owns
// knowing which one holds the file.
func (s *Service) DeleteFile(ctx context.Context, fileID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := copyProjects(s.projects)
	files := copyFiles(s.standalone)

	if projectID == "" {
		idx := fileIndex(files, fileID)
		if idx < 0 {
			return fmt.Errorf("deleting file %s: %w", fileID, ErrFileNotFound)
		}
		files = append(files[:idx], files[idx+1:]...)
	} else {
		pIdx := projectIndex(projects, projectID)
		if pIdx < 0 {
			return fmt.Errorf("deleting file %s from project %s: %w", fileID, projectID, ErrProjectNotFound)
		}
		fIdx := fileIndex(projects[pIdx].Files, fileID)
		if fIdx < 0 {
			return fmt.Errorf("deleting file %s from project %s: %w", fileID, projectID, ErrFileNotFound)
		}
		projects[pIdx].Files = append(projects[pIdx].Files[:fIdx], projects[pIdx].Files[fIdx+1:]...)
		projects[pIdx].LastModified = model.Timestamp()
	}

	if err := s.commit(ctx, projects, files, s.localMode); err != nil {
		return fmt.Errorf("deleting file %s: %w", fileID, err)
	}
	return nil
}

// CreateProject creates a project with the given metadata and file
// list. The file list is taken wholesale; a caller moving standalone
// files into the project is responsible for also removing them from
// the standalone collection (ownership transfer is a CRUD sequence,
// not enforced here).
func (s *Service) CreateProject(ctx context.Context, name, description, iconPath string, files []model.File) (model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return model.Project{}, ErrEmptyProjectName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := model.Timestamp()
	project := model.Project{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		IconPath:     iconPath,
		CreatedAt:    now,
		LastModified: now,
		Files:        copyFiles(files),
	}

	projects := append(copyProjects(s.projects), project)
	if err := s.commit(ctx, projects, s.standalone, s.localMode); err != nil {
		return model.Project{}, fmt.Errorf("creating project %s: %w", name, err)
	}
	return project, nil
}

// UpdateProject replaces a project's metadata and entire file list,
// refreshing lastModified. createdAt is never touched on update.
func (s *Service) UpdateProject(ctx context.Context, id, name, description, iconPath string, files []model.File) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProjectName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects := copyProjects(s.projects)
	idx := projectIndex(projects, id)
	if idx < 0 {
		return fmt.Errorf("updating project %s: %w", id, ErrProjectNotFound)
	}

	projects[idx].Name = name
	projects[idx].Description = description
	projects[idx].IconPath = iconPath
	projects[idx].Files = copyFiles(files)
	projects[idx].LastModified = model.Timestamp()

	if err := s.commit(ctx, projects, s.standalone, s.localMode); err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}
	return nil
}

// DeleteProject removes a project. Its owned files are discarded with
// it, not returned to the standalone collection; the delete is
// irreversible.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := copyProjects(s.projects)
	idx := projectIndex(projects, id)
	if idx < 0 {
		return fmt.Errorf("deleting project %s: %w", id, ErrProjectNotFound)
	}
	projects = append(projects[:idx], projects[idx+1:]...)

	if err := s.commit(ctx, projects, s.standalone, s.localMode); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

// Reset clears the store and empties the in-memory state. This backs
// the user-initiated full reset; it is intentional and terminal, not
// an error path.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	s.projects = nil
	s.standalone = nil
	s.localMode = false
	s.notifyLocked()
	return nil
}

// findFile locates a file in the named container and returns a pointer
// into the given working copies. Callers must hold s.mu.
func findFile(projects []model.Project, files []model.File, fileID, projectID string) (*model.File, error) {
	if projectID == "" {
		idx := fileIndex(files, fileID)
		if idx < 0 {
			return nil, ErrFileNotFound
		}
		return &files[idx], nil
	}

	pIdx := projectIndex(projects, projectID)
	if pIdx < 0 {
		return nil, ErrProjectNotFound
	}
	fIdx := fileIndex(projects[pIdx].Files, fileID)
	if fIdx < 0 {
		return nil, ErrFileNotFound
	}
	return &projects[pIdx].Files[fIdx], nil
}

// projectIndex returns the index of the project with the given ID, or
// -1 when absent.
func projectIndex(projects []model.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// fileIndex returns the index of the file with the given ID, or -1
// when absent.
func fileIndex(files []model.File, id string) int {
	for i := range files {
		if files[i].ID == id {
			return i
		}
	}
	return -1
}

// copyFiles returns an independent copy of a file slice.
func copyFiles(files []model.File) []model.File {
	if files == nil {
		return nil
	}
	out := make([]model.File, len(files))
	copy(out, files)
	return out
}

// copyProjects returns a deep copy of a project slice, including each
// project's file list.
func copyProjects(projects []model.Project) []model.Project {
	if projects == nil {
		return nil
	}
	out := make([]model.Project, len(projects))
	copy(out, projects)
	for i := range out {
		out[i].Files = copyFiles(out[i].Files)
	}
	return out
}
