package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"subserp-backend/config"
	"subserp-backend/models"
	"subserp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type DashboardStats struct {
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
	TotalRevenue        float64 `json:"totalRevenue"`
	PendingInvoices     int64   `json:"pendingInvoices"`
	TotalCustomers      int64   `json:"totalCustomers"`
}

type DashboardSystem struct {
	Products    int64 `json:"products"`
	ActivePlans int64 `json:"activePlans"`
	ActiveTaxes int64 `json:"activeTaxes"`
}

type ActivityEntry struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// GetDashboardStats aggregates the KPI counters and the recent activity feed.
// The queries are independent, so they run concurrently.
func GetDashboardStats(c *gin.Context) {
	var (
		stats               DashboardStats
		system              DashboardSystem
		recentSubscriptions []models.Subscription
		recentInvoices      []models.Invoice
	)

	var g errgroup.Group

	g.Go(func() error {
		return config.DB.Model(&models.Subscription{}).
			Where("status = ?", models.SubscriptionStatusActive).
			Count(&stats.ActiveSubscriptions).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Invoice{}).
			Where("status = ?", models.InvoiceStatusPaid).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&stats.TotalRevenue).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Invoice{}).
			Where("status IN ?", []string{models.InvoiceStatusConfirmed, models.InvoiceStatusDraft}).
			Count(&stats.PendingInvoices).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error
	})
	g.Go(func() error {
		return config.DB.Preload("Customer.User").
			Order("created_at DESC").Limit(3).
			Find(&recentSubscriptions).Error
	})
	g.Go(func() error {
		return config.DB.Preload("Customer.User").
			Order("created_at DESC").Limit(3).
			Find(&recentInvoices).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Product{}).Count(&system.Products).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.RecurringPlan{}).
			Where("is_active = ?", true).Count(&system.ActivePlans).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Tax{}).
			Where("is_active = ?", true).Count(&system.ActiveTaxes).Error
	})

	if err := g.Wait(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	activity := make([]ActivityEntry, 0, len(recentSubscriptions)+len(recentInvoices))
	for _, sub := range recentSubscriptions {
		activity = append(activity, ActivityEntry{
			ID:          sub.ID,
			Type:        "subscription",
			Title:       fmt.Sprintf("New subscription #%s", sub.SubscriptionNumber),
			Description: sub.Customer.User.FirstName + " " + sub.Customer.User.LastName,
			Date:        sub.CreatedAt,
		})
	}
	for _, inv := range recentInvoices {
		activity = append(activity, ActivityEntry{
			ID:          inv.ID,
			Type:        "invoice",
			Title:       fmt.Sprintf("Invoice #%s generated", inv.InvoiceNumber),
			Description: inv.Customer.User.FirstName + " " + inv.Customer.User.LastName,
			Amount:      inv.TotalAmount,
			Date:        inv.CreatedAt,
		})
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})
	if len(activity) > 5 {
		activity = activity[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    stats,
		"activity": activity,
		"system":   system,
	})
}
