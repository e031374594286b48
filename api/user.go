package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithError(c, errNotLoggedIn)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"user": user},
	})
}

// updateMe lets a user change their own profile fields. Everything but
// name, email and photo is dropped from the patch; password changes have
// their own route.
func (s *Server) updateMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithError(c, errNotLoggedIn)
		return
	}

	var body map[string]json.RawMessage
	if err := c.BindJSON(&body); err != nil {
		abortWithError(c, fmt.Errorf("%w: %s", errCannotParse, err))
		return
	}

	if _, ok := body["password"]; ok {
		abortWithError(c, errPasswordRoute)
		return
	}
	if _, ok := body["passwordConfirm"]; ok {
		abortWithError(c, errPasswordRoute)
		return
	}

	filtered := map[string]json.RawMessage{}
	for _, field := range []string{"name", "email", "photo"} {
		if v, ok := body[field]; ok {
			filtered[field] = v
		}
	}
	patch, err := json.Marshal(filtered)
	if err != nil {
		abortWithError(c, err)
		return
	}

	_, updated, err := s.store.UserResource().Update(c.Request.Context(), user.ID, patch)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"user": updated},
	})
}

func (s *Server) deleteMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithError(c, errNotLoggedIn)
		return
	}

	if err := s.store.DeactivateUser(c.Request.Context(), user.ID); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) updatePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithError(c, errNotLoggedIn)
		return
	}

	var req struct {
		PasswordCurrent string `json:"passwordCurrent"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := c.BindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: %s", errCannotParse, err))
		return
	}

	if !user.CheckPassword(req.PasswordCurrent) {
		abortWithError(c, errWrongCredentials)
		return
	}
	if len(req.Password) < 8 {
		abortWithError(c, errPasswordWeak)
		return
	}
	if req.Password != req.PasswordConfirm {
		abortWithError(c, errPasswordMismatch)
		return
	}

	fresh := *user
	if err := fresh.SetPassword(req.Password); err != nil {
		abortWithError(c, err)
		return
	}
	if err := s.store.UpdateUserPassword(c.Request.Context(), user.ID, fresh.Password); err != nil {
		abortWithError(c, err)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": &fresh},
	})
}
