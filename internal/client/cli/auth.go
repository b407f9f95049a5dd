package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, full name, and password, and creates a new
// account. On success the account is logged in right away, so the user lands
// in the authenticated command set without a separate login step.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if res := a.auth.Register(ctx, email, password, fullName); !res.OK {
		fmt.Println("Registration failed:", res.Err)
		return nil
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// A rejected login already uninstalled whatever credential was present, so
// the pending session-expired notice is cleared to avoid a misleading
// message on the next prompt.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res := a.auth.Login(ctx, email, password)
	if !res.OK {
		a.sessionExpired.Store(false)
		fmt.Println("Login failed:", res.Err)
		return nil
	}

	if id := a.auth.Identity(); id != nil {
		fmt.Printf("Logged in as %s\n", id.Email)
	} else {
		fmt.Println("Logged in")
	}
	return nil
}

// WhoAmI prints the authenticated user's profile and, when the credential
// carries an expiry claim, how long the session has left.
func (a *App) WhoAmI(ctx context.Context) error {
	id := a.auth.Identity()
	if id == nil {
		a.auth.FetchIdentity(ctx)
		id = a.auth.Identity()
	}
	if id == nil {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("Email: %s\n", id.Email)
	if id.FullName != "" {
		fmt.Printf("Name: %s\n", id.FullName)
	}
	fmt.Printf("Active: %v\n", id.IsActive)
	if exp, ok := a.authCtx.TokenExpiry(); ok {
		fmt.Printf("Session expires: %s (%s)\n",
			exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
	}
	return nil
}

// Logout discards the in-memory and persisted credential.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Println("Logged out")
	return nil
}
