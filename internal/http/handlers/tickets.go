package handlers

import (
	"net/http"
	"strconv"

	"transitbook/internal/domain/models"
	"transitbook/internal/http/middleware"
	"transitbook/internal/services"

	"github.com/gin-gonic/gin"
)

func ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/tickets
func ListTickets(c *gin.Context) {
	out, err := ticketService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/tickets/lookup?contact=
func LookupTickets(c *gin.Context) {
	out, err := ticketService(c).Lookup(c.Request.Context(), c.Query("contact"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type cancelRequest struct {
	ContactNo string `json:"contact_no"`
}

// POST /api/tickets/:id/cancel
func CancelTicket(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in cancelRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := ticketService(c).Cancel(c.Request.Context(), id, in.ContactNo); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket cancelled", "ticket_id": id})
}

// GET /api/tickets/:id/e-ticket?contact=
// Staff may fetch any ticket; passengers must give the booking contact number.
func GetTicketPDF(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	var (
		pdfBytes []byte
		filename string
		err      error
	)
	if _, staff := middleware.CurrentUser(c); staff {
		pdfBytes, filename, err = svc.GenerateETicket(c.Request.Context(), id)
	} else {
		pdfBytes, filename, err = svc.GenerateETicketForContact(c.Request.Context(), id, c.Query("contact"))
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// PATCH /api/tickets/:id
func UpdateTicket(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in models.TicketUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := ticketService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/tickets/:id
func DeleteTicket(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ticketService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted"})
}

// GET /api/passengers
func ListPassengers(c *gin.Context) {
	out, err := ticketService(c).ListPassengers(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/ticket-log?limit=50
func ListTicketLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := ticketService(c).RecentLog(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
