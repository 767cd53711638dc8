package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-backend/internal/delivery/http/middleware"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/usecase"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/utils"

	"github.com/goccy/go-json"
)

const heartbeatInterval = 15 * time.Second

type CartHandler struct {
	cartUC    *usecase.CartUsecase
	heartbeat time.Duration
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc, heartbeat: heartbeatInterval}
}

// cartResponse is what every cart endpoint returns: the cart plus the
// figures the badge and checkout footer render.
type cartResponse struct {
	Cart    domain.Snapshot    `json:"cart"`
	Summary domain.CartSummary `json:"summary"`
}

func (h *CartHandler) respond(w http.ResponseWriter, snap domain.Snapshot) {
	utils.WriteJSON(w, http.StatusOK, cartResponse{Cart: snap, Summary: h.cartUC.Summarize(snap)})
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "no session")
		return "", false
	}
	return sess.ID, true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respond(w, h.cartUC.GetCart(sid))
}

type addToCartReq struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req addToCartReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	snap, err := h.cartUC.AddToCart(r.Context(), sid, req.ProductID, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, snap)
}

type updateCartReq struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req updateCartReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == nil {
		utils.WriteError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	snap, err := h.cartUC.UpdateQuantity(sid, req.ProductID, *req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, snap)
}

type adjustReq struct {
	Delta int `json:"delta"`
}

func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req adjustReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.cartUC.AdjustQuantity(sid, r.PathValue("productId"), req.Delta)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, snap)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.cartUC.RemoveFromCart(sid, r.PathValue("productId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, snap)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.cartUC.ClearCart(sid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, snap)
}

func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.cartUC.GetSummary(sid))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	result, err := h.cartUC.Checkout(r.Context(), sid)
	if errors.Is(err, domain.ErrCheckoutUnavailable) && result != nil {
		utils.WriteJSON(w, http.StatusNotImplemented, result)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// Events streams the cart as server-sent events: the current state first,
// then one "cart" event per committed change. Under back-pressure only the
// newest state is kept; Revision tells the client how much it skipped.
func (h *CartHandler) Events(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	log := logger.WithContext(r.Context())
	rc := http.NewResponseController(w)

	updates := make(chan domain.Snapshot, 1)
	current, unsubscribe, done := h.cartUC.Watch(sid, func(s domain.Snapshot) {
		select {
		case updates <- s:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- s
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := h.writeEvent(w, rc, current); err != nil {
		log.Warn().Err(err).Msg("Cart stream failed")
		return
	}
	log.Debug().Msg("Cart stream opened")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Msg("Cart stream closed by client")
			return
		case <-done:
			fmt.Fprint(w, "event: closed\ndata: {}\n\n")
			_ = rc.Flush()
			return
		case s := <-updates:
			if err := h.writeEvent(w, rc, s); err != nil {
				log.Warn().Err(err).Msg("Cart stream failed")
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func (h *CartHandler) writeEvent(w http.ResponseWriter, rc *http.ResponseController, snap domain.Snapshot) error {
	payload, err := json.Marshal(cartResponse{Cart: snap, Summary: h.cartUC.Summarize(snap)})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: cart\ndata: %s\n\n", snap.Revision, payload); err != nil {
		return err
	}
	return rc.Flush()
}
