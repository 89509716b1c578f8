// Command console drives a full checkout against a booking backend:
// sign-in, item edits, live estimate, submit, staff approval and payment.
// Backend failures are reported as warnings while the flow completes in
// fallback mode, matching the web UI behavior.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/DC111-ui/hss-storage-platform/checkout"
	"github.com/DC111-ui/hss-storage-platform/client"
	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8081", "booking API base URL")
	email := flag.String("email", "demo@example.com", "sign-in email")
	duration := flag.Int("months", 3, "storage duration in months")
	method := flag.String("method", "card", "payment method")
	signOut := flag.Bool("signout", false, "clear the persisted session and exit")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()

	store, err := client.DefaultSessionStore()
	if err != nil {
		log.Fatalf("console: cannot resolve session path: %v", err)
	}
	if *signOut {
		if err := store.Clear(); err != nil {
			log.Fatalf("console: sign-out failed: %v", err)
		}
		fmt.Println("Signed out.")
		return
	}

	session, err := store.Load()
	if err != nil {
		log.Fatalf("console: cannot load session: %v", err)
	}
	session.BaseURL = *baseURL

	api := client.New(*baseURL, session, 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if !session.Active() {
		if resp, err := api.Login(ctx, *email, ""); err != nil {
			fmt.Printf("! sign-in unavailable (%v), continuing unauthenticated\n", err)
		} else {
			fmt.Printf("Signed in as %s (%s)\n", *email, resp.Role)
			api.Session.BaseURL = *baseURL
			if err := store.Save(api.Session); err != nil {
				logger.Sugar().Warnf("could not persist session: %v", err)
			}
		}
	}

	// Assemble the draft: the classic starter set plus a described extra.
	items := checkout.NewItemList()
	items.AddItem(models.ItemBed)
	items.AddItem(models.ItemFridge)
	box := items.AddItem(models.ItemBox)
	lamp := items.AddItem(models.ItemOther)
	items.UpdateName(lamp.ID, "Study lamp")
	items.AttachPhoto(box.ID, checkout.PhotoKey("box-front.jpg"))

	calc := checkout.NewCalculator()
	quote := calc.Quote(items.Items(), *duration)
	fmt.Printf("Estimate: %d item(s), %d photo(s), %d month(s)\n", quote.ItemCount, quote.PhotoCount, quote.Duration)
	fmt.Printf("  monthly subtotal R%.2f, handling R%.2f, total R%.2f\n",
		quote.MonthlySubtotal, quote.HandlingFee, quote.Total)

	lifecycle := checkout.NewLifecycle(api, calc, logger)
	customer := models.CustomerInfo{
		Name:         "Console Demo",
		Email:        *email,
		PickupDate:   time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		PickupWindow: "08:00-12:00",
		Address:      "12 Demo Street, Cape Town",
	}

	report(lifecycle.Submit(ctx, items.Items(), *duration, customer))
	report(lifecycle.Approve(ctx))
	report(lifecycle.Pay(ctx, *method))

	fmt.Printf("Final state: %s (booking %s, reference %s)\n",
		lifecycle.State(), lifecycle.BookingID(), lifecycle.PaymentReference())
}

func report(outcome checkout.Outcome, err error) {
	if err != nil {
		fmt.Printf("x %v\n", err)
		return
	}
	marker := "-"
	if outcome.Severity == checkout.SeverityWarning {
		marker = "!"
	}
	fmt.Printf("%s [%s] %s\n", marker, outcome.Status, outcome.Message)
}
