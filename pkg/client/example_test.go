package client_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pratik-mahalle/hireloop/pkg/client"
)

// Example demonstrates basic usage of the hireloop client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.hireloop.example",
	})

	ctx := context.Background()

	loginResp, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	usage, err := c.Entitlements().Summary(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range usage {
		if e.Unlimited {
			fmt.Printf("%s: %d used (unlimited)\n", e.Resource, e.Used)
			continue
		}
		if e.Limit != nil {
			fmt.Printf("%s: %d/%d used\n", e.Resource, e.Used, *e.Limit)
		}
	}
}

// ExampleCandidateService_Create demonstrates handling a plan limit
func ExampleCandidateService_Create() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.hireloop.example",
	})

	ctx := context.Background()
	if _, err := c.Login(ctx, "user@example.com", "password"); err != nil {
		log.Fatal(err)
	}

	_, err := c.Candidates().Create(ctx, client.CreateCandidateRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.IsQuotaExceeded() {
		fmt.Printf("Candidate limit reached, upgrade at %s\n", apiErr.UpgradeURL())
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}

// ExampleBillingService_Checkout demonstrates upgrading to a paid plan
func ExampleBillingService_Checkout() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.hireloop.example",
	})

	ctx := context.Background()
	if _, err := c.Login(ctx, "user@example.com", "password"); err != nil {
		log.Fatal(err)
	}

	url, err := c.Billing().Checkout(ctx, "professional-monthly")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Complete payment at: %s\n", url)
}
