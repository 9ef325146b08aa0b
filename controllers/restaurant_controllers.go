package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/realtime"
	"github.com/rennixx/ServiceQR/theme"
	"github.com/rennixx/ServiceQR/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// GetRestaurantBySlug -> data restoran plus theme yang sudah resolved dan
// artefak style yang dikonsumsi page shell. Theme dikirim sebagai value
// eksplisit di payload, bukan state global.
func (rc *RestaurantController) GetRestaurantBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var restaurant models.Restaurant
	if err := rc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	resolved := theme.WithDefaults(restaurant.ThemeConfig)

	pairing, ok := theme.FontPairings[resolved.FontPairing]
	if !ok {
		pairing = theme.FontPairings[theme.PairingModern]
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", gin.H{
		"restaurant":        restaurant,
		"theme":             resolved,
		"css_variables":     theme.CSSVariables(resolved),
		"background_styles": theme.BackgroundStyles(resolved),
		"glass_classes":     theme.GlassClasses(resolved),
		"glass_effect":      theme.GlassEffect(resolved),
		"font_pairing":      pairing,
	})
}

// UpdateRestaurantTheme -> simpan theme override parsial. Tidak ada
// pengecekan versi; save terakhir menang saat dua admin menyimpan bersamaan.
func (rc *RestaurantController) UpdateRestaurantTheme(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	var body theme.Config
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	restaurant.ThemeConfig = body
	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastThemeUpdate(restaurant)

	utils.InfoLogger.Printf("Theme updated for restaurant %s", restaurant.Slug)
	utils.RespondJSON(c, http.StatusOK, "Theme updated", restaurant)
}
