package main

import (
	"flag"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// A small stand-in for the real user directory. It keeps everything in
// memory and speaks the same wire shapes the console expects, so the
// console can be run end to end without the production upstream.
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	users := flag.Int("users", 25, "number of seeded users")
	seedVal := flag.Uint64("seed", 1, "fake data seed")
	flag.Parse()

	s := newStore()
	s.seed(*users, *seedVal)
	log.Printf("directory seeded with %d users", *users)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api/v1")
	api.GET("/users", s.listUsers)
	api.POST("/users", s.createUser)
	api.GET("/users/:id", s.getUser)
	api.PATCH("/users/:id", s.updateUser)
	api.DELETE("/users/:id", s.deleteUser)
	api.GET("/users/:id/preferences", s.getPreferences)
	api.PUT("/users/:id/preferences", s.putPreferences)
	api.GET("/users/:id/posts", s.listPosts)
	api.POST("/users/:id/posts", s.createPost)
	api.DELETE("/posts/:id", s.deletePost)

	if err := e.Start(*addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("directory start: %v", err)
	}
}

// pageEnvelope mirrors the paged listing shape the console reads.
type pageEnvelope struct {
	Content       []model.User `json:"content"`
	TotalPages    int          `json:"totalPages"`
	TotalElements int          `json:"totalElements"`
	Size          int          `json:"size"`
	Number        int          `json:"number"`
	First         bool         `json:"first"`
	Last          bool         `json:"last"`
}

type createUserRequest struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	Roles    []string     `json:"roles"`
	Status   model.Status `json:"status"`
}

type updateUserRequest struct {
	Status model.Status `json:"status"`
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *store) listUsers(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.snapshot()
	pageParam := c.QueryParam("page")
	if pageParam == "" {
		return c.JSON(http.StatusOK, all)
	}

	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 {
		size = model.PageSize
	}

	totalPages := (len(all) + size - 1) / size
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}

	return c.JSON(http.StatusOK, pageEnvelope{
		Content:       all[start:end],
		TotalPages:    totalPages,
		TotalElements: len(all),
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page+1 >= totalPages,
	})
}

func (s *store) getUser(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, user)
}

func (s *store) createUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and email are required"})
	}
	status := req.Status
	if !status.Valid() {
		status = model.StatusActive
	}
	roles := req.Roles
	if roles == nil {
		roles = []string{model.RoleUser}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		Name:      req.Name,
		Roles:     roles,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	appendAudit(user, "CREATED", "console", "user created")
	s.users[user.ID] = user
	s.order = append(s.order, user.ID)

	return c.JSON(http.StatusCreated, user)
}

func (s *store) updateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.Status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be ACTIVE or INACTIVE"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[c.Param("id")]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	user.Status = req.Status
	user.UpdatedAt = time.Now().UTC()
	appendAudit(user, "STATUS_CHANGED", "console", "status set to "+string(req.Status))

	return c.JSON(http.StatusOK, user)
}

func (s *store) deleteUser(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.users[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	delete(s.users, id)
	delete(s.preferences, id)
	delete(s.posts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *store) getPreferences(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.users[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	prefs, ok := s.preferences[id]
	if !ok {
		if s.flakyPrefs[id] {
			// Mimics the production quirk where the preferences backend
			// answers 200 with an error field instead of a status code.
			return c.JSON(http.StatusOK, echo.Map{"error": "preferences temporarily unavailable"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "preferences not found"})
	}
	return c.JSON(http.StatusOK, prefs)
}

func (s *store) putPreferences(c echo.Context) error {
	var prefs model.Preferences
	if err := c.Bind(&prefs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	user, ok := s.users[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	prefs.UpdatedAt = time.Now().UTC()
	s.preferences[id] = &prefs
	delete(s.flakyPrefs, id)
	appendAudit(user, "PREFERENCES_SET", "console", "preferences written")

	return c.JSON(http.StatusOK, prefs)
}

func (s *store) listPosts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.users[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	posts := s.posts[id]
	if posts == nil {
		posts = []model.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *store) createPost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	user, ok := s.users[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	now := time.Now().UTC()
	post := model.Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[id] = append(s.posts[id], post)
	appendAudit(user, "POST_CREATED", "console", "post "+post.ID)

	return c.JSON(http.StatusCreated, post)
}

func (s *store) deletePost(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	postID := c.Param("id")
	for userID, posts := range s.posts {
		for i, p := range posts {
			if p.ID == postID {
				s.posts[userID] = append(posts[:i], posts[i+1:]...)
				if user, ok := s.users[userID]; ok {
					appendAudit(user, "POST_DELETED", "console", "post "+postID)
				}
				return c.NoContent(http.StatusNoContent)
			}
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
}

// store is the in-memory system of record behind the stub directory.
type store struct {
	mu          sync.Mutex
	users       map[string]*model.User
	order       []string
	preferences map[string]*model.Preferences
	posts       map[string][]model.Post
	flakyPrefs  map[string]bool
}

func newStore() *store {
	return &store{
		users:       make(map[string]*model.User),
		preferences: make(map[string]*model.Preferences),
		posts:       make(map[string][]model.Post),
		flakyPrefs:  make(map[string]bool),
	}
}

// snapshot returns users in creation order. Callers must hold the lock.
func (s *store) snapshot() []model.User {
	all := make([]model.User, 0, len(s.order))
	for _, id := range s.order {
		if user, ok := s.users[id]; ok {
			all = append(all, *user)
		}
	}
	return all
}

// seed fills the store with deterministic fake data.
func (s *store) seed(n int, seedVal uint64) {
	faker := gofakeit.New(seedVal)
	themes := []string{"light", "dark", "system"}
	languages := []string{"en", "de", "fr", "es"}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		created := faker.DateRange(
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		)

		roles := []string{model.RoleUser}
		if i == 0 {
			roles = []string{model.RoleAdmin}
		} else if faker.Bool() {
			roles = append(roles, model.RoleEditor)
		}

		status := model.StatusActive
		if i%5 == 4 {
			status = model.StatusInactive
		}

		user := &model.User{
			ID:        faker.UUID(),
			Username:  faker.Username(),
			Email:     faker.Email(),
			Name:      faker.Name(),
			Roles:     roles,
			Status:    status,
			CreatedAt: created,
			UpdatedAt: created,
		}
		appendAudit(user, "CREATED", "seed", "seeded user")
		s.users[user.ID] = user
		s.order = append(s.order, user.ID)

		postCount := faker.Number(0, 3)
		for p := 0; p < postCount; p++ {
			s.posts[user.ID] = append(s.posts[user.ID], model.Post{
				ID:        faker.UUID(),
				Title:     faker.Sentence(4),
				Content:   faker.Paragraph(1, 3, 8, " "),
				CreatedAt: created,
				UpdatedAt: created,
			})
		}

		if i%3 == 2 {
			// A slice of users never set preferences up. Some of those hit
			// the backend quirk that reports the miss inside the payload.
			if i%6 == 5 {
				s.flakyPrefs[user.ID] = true
			}
			continue
		}
		s.preferences[user.ID] = &model.Preferences{
			Theme:                faker.RandomString(themes),
			Language:             faker.RandomString(languages),
			NotificationsEnabled: faker.Bool(),
			UpdatedAt:            created,
		}
	}
}

func appendAudit(u *model.User, action, actor, details string) {
	u.AuditTrail = append(u.AuditTrail, model.AuditEntry{
		Action:      action,
		PerformedBy: actor,
		Timestamp:   time.Now().UTC(),
		Details:     details,
	})
}
