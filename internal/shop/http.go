package shop

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"DragonMart/internal/catalog"
	"DragonMart/internal/session"
	"DragonMart/pkg/kit"
)

const maxBodyBytes = 1 << 20

// Server is the rendering-layer surface: it only calls engine operations on
// the Shop and serves the resulting snapshots as JSON.
type Server struct {
	Shop *Shop
	Log  *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Shop.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.listProducts)
	r.Get("/catalog", s.rawCatalog)
	r.Post("/products", s.createProduct)
	r.Delete("/products/{id}", s.deleteProduct)

	r.Get("/cart", s.getCart)
	r.Post("/cart/{id}", s.addToCart)
	r.Post("/cart/{id}/increment", s.incrementCart)
	r.Post("/cart/{id}/decrement", s.decrementCart)
	r.Delete("/cart/{id}", s.removeFromCart)

	r.Post("/checkout", s.checkout)
	r.Get("/orders", s.listOrders)

	r.Get("/session", s.getSession)
	r.Post("/session", s.login)
	r.Delete("/session", s.logout)

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	crit, err := criteriaFromQuery(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Shop.Results(crit))
}

func (s *Server) rawCatalog(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.Catalog())
}

type createProductReq struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Prime       bool     `json:"prime"`
	Image       string   `json:"img"`
	ExtraImages []string `json:"images"`
	Videos      []string `json:"videos"`
	Description string   `json:"desc"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p, err := s.Shop.CreateProduct(r.Context(), catalog.CreateInput{
		Title:       req.Title,
		Category:    catalog.Category(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
		Prime:       req.Prime,
		Image:       req.Image,
		ExtraImages: req.ExtraImages,
		Videos:      req.Videos,
		Description: req.Description,
	})
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.Shop.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeShopError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.CartView())
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	s.Shop.AddToCart(r.Context(), chi.URLParam(r, "id"))
	kit.WriteJSON(w, http.StatusOK, s.Shop.CartView())
}

func (s *Server) incrementCart(w http.ResponseWriter, r *http.Request) {
	s.Shop.IncrementCart(r.Context(), chi.URLParam(r, "id"))
	kit.WriteJSON(w, http.StatusOK, s.Shop.CartView())
}

func (s *Server) decrementCart(w http.ResponseWriter, r *http.Request) {
	s.Shop.DecrementCart(r.Context(), chi.URLParam(r, "id"))
	kit.WriteJSON(w, http.StatusOK, s.Shop.CartView())
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	s.Shop.RemoveFromCart(r.Context(), chi.URLParam(r, "id"))
	kit.WriteJSON(w, http.StatusOK, s.Shop.CartView())
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	o, err := s.Shop.Checkout(r.Context())
	if err != nil {
		s.writeShopError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Shop.Orders())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.Shop.CurrentSession()
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not signed in", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sess)
}

type loginReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email required", nil)
		return
	}

	role := session.RoleCustomer
	if req.Role != "" {
		parsed, err := session.ParseRole(req.Role)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		role = parsed
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "User"
	}

	sess := session.Session{
		ID:    "u_" + uuid.NewString(),
		Name:  name,
		Email: req.Email,
		Role:  role,
	}
	if err := s.Shop.Login(r.Context(), sess); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sess)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.Shop.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeShopError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNeedsAuth):
		kit.WriteError(w, r, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		kit.WriteError(w, r, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, catalog.ErrTitleRequired),
		errors.Is(err, catalog.ErrUnknownCategory),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, catalog.ErrNegativeStock):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	default:
		if s.Log != nil {
			s.Log.Error("shop operation failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func criteriaFromQuery(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()

	crit := catalog.Criteria{
		Query:    q.Get("q"),
		Category: catalog.CategoryAll,
		Sort:     catalog.SortFeatured,
	}

	if c := q.Get("category"); c != "" && c != string(catalog.CategoryAll) {
		if !catalog.ValidCategory(catalog.Category(c)) {
			return catalog.Criteria{}, errors.New("unknown category")
		}
		crit.Category = catalog.Category(c)
	}

	if raw := q.Get("max_price"); raw != "" {
		mp, err := strconv.ParseFloat(raw, 64)
		if err != nil || mp < 0 {
			return catalog.Criteria{}, errors.New("bad max_price")
		}
		crit.MaxPrice = mp
	}

	if raw := q.Get("prime"); raw != "" {
		prime, err := strconv.ParseBool(raw)
		if err != nil {
			return catalog.Criteria{}, errors.New("bad prime flag")
		}
		crit.PrimeOnly = prime
	}

	sortMode, ok := catalog.ParseSortMode(q.Get("sort"))
	if !ok {
		return catalog.Criteria{}, errors.New("unknown sort mode")
	}
	crit.Sort = sortMode

	return crit, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
