package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AITechnologyDev/G4FChat/internal/llm"
)

const (
	modelsFile = "user_models.json"
	chatsFile  = "user_chats.json"
	langFile   = "user_lang.json"
)

// userChats is the on-disk shape of one user's chat collection.
type userChats struct {
	Chats  map[string]*Chat `json:"chats"`
	Active string           `json:"active,omitempty"`
}

// FileStore implements Store over three JSON files. All state is cached
// in memory after the first read; a single coarse lock guards every
// load-modify-store sequence.
type FileStore struct {
	mu           sync.Mutex
	dir          string
	systemPrompt string

	models      map[string]string
	langs       map[string]string
	chats       map[string]*userChats
	modelsReady bool
	langsReady  bool
	chatsReady  bool
}

// NewFileStore creates a store rooted at dir. New chats are seeded with
// systemPrompt as their first history entry.
func NewFileStore(dir, systemPrompt string) *FileStore {
	return &FileStore{dir: dir, systemPrompt: systemPrompt}
}

func (s *FileStore) Model(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadModels()
	return s.models[userID]
}

func (s *FileStore) SetModel(userID, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadModels()
	s.models[userID] = model
	return s.writeJSON(modelsFile, s.models)
}

func (s *FileStore) Lang(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLangs()
	return s.langs[userID]
}

func (s *FileStore) SetLang(userID, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLangs()
	s.langs[userID] = lang
	return s.writeJSON(langFile, s.langs)
}

func (s *FileStore) NewChat(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	uc := s.ensureUser(userID)
	chatID := newChatID()
	uc.Chats[chatID] = &Chat{
		History: []llm.Message{{Role: "system", Content: s.systemPrompt}},
		Created: time.Now().UTC(),
	}
	uc.Active = chatID
	return chatID, s.writeChats()
}

func (s *FileStore) Chat(userID, chatID string) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	uc, ok := s.chats[userID]
	if !ok {
		return Chat{}, false
	}
	c, ok := uc.Chats[chatID]
	if !ok {
		return Chat{}, false
	}
	// Copy so callers can't mutate cached history in place.
	out := *c
	out.History = append([]llm.Message(nil), c.History...)
	return out, true
}

func (s *FileStore) Chats(userID string) ([]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	uc, ok := s.chats[userID]
	if !ok {
		return nil, ""
	}
	ids := make([]string, 0, len(uc.Chats))
	for id := range uc.Chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := uc.Chats[ids[i]], uc.Chats[ids[j]]
		if !ci.Created.Equal(cj.Created) {
			return ci.Created.Before(cj.Created)
		}
		return ids[i] < ids[j]
	})
	return ids, uc.Active
}

func (s *FileStore) SetActive(userID, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	uc, ok := s.chats[userID]
	if !ok {
		return fmt.Errorf("user %s has no chats", userID)
	}
	if _, ok := uc.Chats[chatID]; !ok {
		return fmt.Errorf("chat %s not found", chatID)
	}
	uc.Active = chatID
	return s.writeChats()
}

func (s *FileStore) ActiveChat(userID string) (string, error) {
	s.mu.Lock()
	s.loadChats()
	if uc, ok := s.chats[userID]; ok && uc.Active != "" {
		if _, ok := uc.Chats[uc.Active]; ok {
			s.mu.Unlock()
			return uc.Active, nil
		}
	}
	s.mu.Unlock()
	return s.NewChat(userID)
}

func (s *FileStore) DeleteChat(userID, chatID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	uc, ok := s.chats[userID]
	if !ok {
		return "", fmt.Errorf("user %s has no chats", userID)
	}
	if _, ok := uc.Chats[chatID]; !ok {
		return "", fmt.Errorf("chat %s not found", chatID)
	}
	delete(uc.Chats, chatID)

	if uc.Active == chatID {
		uc.Active = ""
		for id := range uc.Chats {
			uc.Active = id
			break
		}
		if uc.Active == "" {
			fresh := newChatID()
			uc.Chats[fresh] = &Chat{
				History: []llm.Message{{Role: "system", Content: s.systemPrompt}},
				Created: time.Now().UTC(),
			}
			uc.Active = fresh
		}
	}
	return uc.Active, s.writeChats()
}

func (s *FileStore) AppendMessage(userID, chatID string, msg llm.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	c, err := s.chat(userID, chatID)
	if err != nil {
		return err
	}
	c.History = append(c.History, msg)
	return s.writeChats()
}

func (s *FileStore) SetProvider(userID, chatID, provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadChats()

	c, err := s.chat(userID, chatID)
	if err != nil {
		return err
	}
	c.Provider = provider
	return s.writeChats()
}

func (s *FileStore) Users() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadModels()
	return len(s.models)
}

// chat resolves a chat record. Must be called with s.mu held.
func (s *FileStore) chat(userID, chatID string) (*Chat, error) {
	uc, ok := s.chats[userID]
	if !ok {
		return nil, fmt.Errorf("user %s has no chats", userID)
	}
	c, ok := uc.Chats[chatID]
	if !ok {
		return nil, fmt.Errorf("chat %s not found", chatID)
	}
	return c, nil
}

// userChats returns the user's collection, creating it if absent.
// Must be called with s.mu held.
func (s *FileStore) ensureUser(userID string) *userChats {
	uc, ok := s.chats[userID]
	if !ok {
		uc = &userChats{Chats: make(map[string]*Chat)}
		s.chats[userID] = uc
	}
	if uc.Chats == nil {
		uc.Chats = make(map[string]*Chat)
	}
	return uc
}

func (s *FileStore) loadModels() {
	if s.modelsReady {
		return
	}
	s.models = make(map[string]string)
	s.readJSON(modelsFile, &s.models)
	s.modelsReady = true
}

func (s *FileStore) loadLangs() {
	if s.langsReady {
		return
	}
	s.langs = make(map[string]string)
	s.readJSON(langFile, &s.langs)
	s.langsReady = true
}

func (s *FileStore) loadChats() {
	if s.chatsReady {
		return
	}
	s.chats = make(map[string]*userChats)
	s.readJSON(chatsFile, &s.chats)
	s.chatsReady = true
}

// readJSON fills dst from a data file; a missing or corrupt file leaves
// dst empty so a bad disk state never takes the client down.
func (s *FileStore) readJSON(name string, dst any) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[session] read %s: %v", name, err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[session] parse %s: %v", name, err)
	}
}

func (s *FileStore) writeChats() error {
	return s.writeJSON(chatsFile, s.chats)
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0600)
}

// newChatID returns a short chat ID, the first 8 hex chars of a UUID.
func newChatID() string {
	return uuid.New().String()[:8]
}
