package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	protected.PUT("/users/profile", handler.UpdateProfile)
	public.GET("/users/:id", handler.GetPublicProfile)
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Location    *string `json:"location"`
	Bio         *string `json:"bio"`
	ResumeURL   *string `json:"resumeUrl"`
	CompanyName *string `json:"companyName"`
	CompanyLogo *string `json:"companyLogo"`
	Website     *string `json:"website"`
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Partially update the authenticated user's profile fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/profile [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), userID, &domain.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Bio:         req.Bio,
		ResumeURL:   req.ResumeURL,
		CompanyName: req.CompanyName,
		CompanyLogo: req.CompanyLogo,
		Website:     req.Website,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", gin.H{"user": user})
}

// GetPublicProfile godoc
// @Summary      Get public user profile
// @Description  Public subset of a user profile; email, phone and resume are never included
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	user, err := h.userUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User profile", gin.H{"user": user})
}
