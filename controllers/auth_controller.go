package controllers

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuscrave/campuscrave-api/config"
	"github.com/campuscrave/campuscrave-api/models"
	"github.com/campuscrave/campuscrave-api/services"
)

// bcrypt cost used for all stored credentials
const passwordHashCost = 12

var (
	studentEmailRegex  = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@student\.babcock\.edu\.ng$`)
	lecturerEmailRegex = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@lecturer\.babcock\.edu\.ng$`)
)

// RegisterStudentRequest represents the request body for student registration
type RegisterStudentRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
}

// RegisterVendorRequest represents the request body for vendor registration
type RegisterVendorRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// emailTaken reports whether an email is registered to any principal kind.
// An email is unique across the union of students, vendors and admins.
func emailTaken(db *gorm.DB, email string) (bool, error) {
	lookups := []interface{}{&models.Student{}, &models.Vendor{}, &models.Admin{}}
	for _, model := range lookups {
		err := db.Where("email = ?", email).First(model).Error
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
	}
	return false, nil
}

// RegisterStudent handles POST /api/auth/student/register
func RegisterStudent(c *gin.Context) {
	var req RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Phone == "" || req.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email, password and name are required",
		})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Passwords do not match",
		})
		return
	}
	if !studentEmailRegex.MatchString(req.Email) && !lecturerEmailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email must be a valid Babcock student or lecturer email",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	student := models.Student{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Phone:    req.Phone,
	}

	// Lookup and create run in one transaction to narrow the window where
	// two kinds could register the same email concurrently.
	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, req.Email)
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Email already registered",
			})
			return
		}
		log.Printf("Failed to register student: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	// Best effort; registration succeeds even when mail is down
	if cfg := config.GetConfig(); cfg != nil && cfg.EmailHost != "" {
		go func(email string, id uint) {
			token, err := services.SignToken(id, models.RoleStudent)
			if err != nil {
				log.Printf("Failed to sign verification token for %s: %v", email, err)
				return
			}
			if err := services.SendVerificationEmail(email, token); err != nil {
				log.Printf("Failed to send verification email to %s: %v", email, err)
			}
		}(student.Email, student.ID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Student registered successfully.",
		"data": gin.H{
			"student": gin.H{
				"id":        student.ID,
				"email":     student.Email,
				"name":      student.Name,
				"phone":     student.Phone,
				"role":      models.RoleStudent,
				"createdAt": student.CreatedAt,
			},
		},
	})
}

// RegisterVendor handles POST /api/auth/vendor/register
func RegisterVendor(c *gin.Context) {
	var req RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email, password, name, and location are required",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	vendor := models.Vendor{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
	}

	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, req.Email)
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken
		}
		return tx.Create(&vendor).Error
	})
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Email already registered",
			})
			return
		}
		log.Printf("Failed to register vendor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Vendor registered successfully.",
		"data": gin.H{
			"vendor": gin.H{
				"id":       vendor.ID,
				"email":    vendor.Email,
				"name":     vendor.Name,
				"location": vendor.Location,
			},
		},
	})
}

var errEmailTaken = errors.New("email already registered")

// Login handles POST /api/auth/login for all principal kinds
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email and password are required",
		})
		return
	}

	db := config.GetDB()

	// Sequential lookup across the disjoint principal kinds
	var (
		id             uint
		name           string
		hashedPassword string
		role           string
	)

	var student models.Student
	if err := db.Where("email = ?", req.Email).First(&student).Error; err == nil {
		id, name, hashedPassword, role = student.ID, student.Name, student.Password, models.RoleStudent
	} else {
		var vendor models.Vendor
		if err := db.Where("email = ?", req.Email).First(&vendor).Error; err == nil {
			id, name, hashedPassword, role = vendor.ID, vendor.Name, vendor.Password, models.RoleVendor
		} else {
			var admin models.Admin
			if err := db.Where("email = ?", req.Email).First(&admin).Error; err == nil {
				id, name, hashedPassword, role = admin.ID, admin.Name, admin.Password, models.RoleAdmin
			}
		}
	}

	// Unknown email and wrong password answer identically
	if role == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid email or password",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid email or password",
		})
		return
	}

	token, err := services.SignToken(id, role)
	if err != nil {
		log.Printf("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data": gin.H{
			"user": gin.H{
				"id":    id,
				"email": req.Email,
				"name":  name,
				"role":  role,
			},
		},
	})
}
