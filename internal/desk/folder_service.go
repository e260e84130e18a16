package desk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// FolderService manages virtual folders. Folders are derived from equipment
// locations; only empty folders are stored explicitly, as a JSON array of
// names, so they survive while holding nothing.
type FolderService struct {
	repo   *EquipmentRepository
	store  Store
	events *EventBus
	clock  Clock
	logger Logger
}

func NewFolderService(repo *EquipmentRepository, store Store, events *EventBus, clock Clock, logger Logger) *FolderService {
	return &FolderService{repo: repo, store: store, events: events, clock: clock, logger: logger}
}

// EmptyFolders returns the persisted set of explicitly created folder names.
func (s *FolderService) EmptyFolders(ctx context.Context) ([]string, error) {
	raw, ok, err := s.store.Get(ctx, KeyEmptyFolders)
	if err != nil {
		return nil, &StorageError{Op: "get", Key: KeyEmptyFolders, Err: err}
	}
	if !ok {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, &StorageError{Op: "get", Key: KeyEmptyFolders, Err: fmt.Errorf("decoding: %w", err)}
	}
	return names, nil
}

func (s *FolderService) saveEmptyFolders(ctx context.Context, names []string, op, name string) error {
	c := jsonCollection[string]{store: s.store, key: KeyEmptyFolders, clock: s.clock, events: s.events}
	return c.save(ctx, names, op, name)
}

// List returns the current folder grouping.
func (s *FolderService) List(ctx context.Context) (map[string][]Equipment, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	empty, err := s.EmptyFolders(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByFolder(items, empty), nil
}

// Contents returns the items of one folder in presentation order. Unknown
// folders yield an empty list.
func (s *FolderService) Contents(ctx context.Context, name string) ([]Equipment, error) {
	groups, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return SortFolderContents(groups[strings.TrimSpace(name)], s.clock.Now()), nil
}

// Create adds an empty folder. The name is trimmed and compared
// case-sensitively against existing folders; a match fails with
// DuplicateFolderError before anything is written.
func (s *FolderService) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("folder name is required")
	}
	if name == UnspecifiedFolder {
		return &DuplicateFolderError{Name: name}
	}

	groups, err := s.List(ctx)
	if err != nil {
		return err
	}
	if _, exists := groups[name]; exists {
		return &DuplicateFolderError{Name: name}
	}

	empty, err := s.EmptyFolders(ctx)
	if err != nil {
		return err
	}
	if err := s.saveEmptyFolders(ctx, append(empty, name), "folder-create", name); err != nil {
		return err
	}
	s.logger.Info("folder created", "name", name)
	return nil
}

// Delete clears the location of every item in the folder and forgets the
// folder. Items are kept. If a console currently shows this folder it must
// navigate out; that is the caller's concern.
func (s *FolderService) Delete(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)

	n, err := s.repo.UpdateWhere(ctx, "folder-delete",
		func(e Equipment) bool { return strings.TrimSpace(e.Location) == name && name != "" },
		func(e *Equipment) { e.Location = "" },
	)
	if err != nil {
		return 0, fmt.Errorf("clearing folder %q: %w", name, err)
	}

	if err := s.forget(ctx, name, "folder-delete"); err != nil {
		return n, err
	}
	s.logger.Info("folder deleted", "name", name, "released", n)
	return n, nil
}

// Move relocates items into folder. Moving into the unspecified folder
// clears the location. Coordinates are left untouched.
func (s *FolderService) Move(ctx context.Context, ids []string, folder string) (int, error) {
	folder = strings.TrimSpace(folder)
	if folder == UnspecifiedFolder {
		folder = ""
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	n, err := s.repo.UpdateWhere(ctx, "folder-move",
		func(e Equipment) bool { return want[e.ID] },
		func(e *Equipment) { e.Location = folder },
	)
	if err != nil {
		return 0, fmt.Errorf("moving items to %q: %w", folder, err)
	}
	if n < len(want) {
		for _, id := range ids {
			if _, err := s.repo.Get(ctx, id); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Rename migrates every item of oldName to newName. The empty-folder entry
// is renamed as well. Renaming onto an existing folder is rejected.
func (s *FolderService) Rename(ctx context.Context, oldName, newName string) (int, error) {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" || newName == "" || oldName == UnspecifiedFolder || newName == UnspecifiedFolder {
		return 0, fmt.Errorf("renaming folder: names must be non-empty and not %q", UnspecifiedFolder)
	}

	groups, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if _, ok := groups[oldName]; !ok {
		return 0, fmt.Errorf("folder not found: %q", oldName)
	}
	if _, exists := groups[newName]; exists {
		return 0, &DuplicateFolderError{Name: newName}
	}

	n, err := s.repo.UpdateWhere(ctx, "folder-rename",
		func(e Equipment) bool { return strings.TrimSpace(e.Location) == oldName },
		func(e *Equipment) { e.Location = newName },
	)
	if err != nil {
		return 0, fmt.Errorf("renaming folder %q: %w", oldName, err)
	}

	empty, err := s.EmptyFolders(ctx)
	if err != nil {
		return n, err
	}
	renamed := false
	for i, f := range empty {
		if strings.TrimSpace(f) == oldName {
			empty[i] = newName
			renamed = true
		}
	}
	if renamed {
		if err := s.saveEmptyFolders(ctx, empty, "folder-rename", newName); err != nil {
			return n, err
		}
	}
	return n, nil
}

// forget removes name from the persisted empty-folder set.
func (s *FolderService) forget(ctx context.Context, name, op string) error {
	empty, err := s.EmptyFolders(ctx)
	if err != nil {
		return err
	}
	kept := empty[:0]
	removed := false
	for _, f := range empty {
		if strings.TrimSpace(f) == name {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return nil
	}
	return s.saveEmptyFolders(ctx, kept, op, name)
}
