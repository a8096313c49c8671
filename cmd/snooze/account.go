package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pevans/snooze/app"
)

// credentials fills in whatever the flags left empty from stdin.
func credentials(values []*string, labels []string) error {
	for i, v := range values {
		answer, err := prompt(*v, labels[i])
		if err != nil {
			return err
		}
		*v = answer
	}
	return nil
}

func handleSignup(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password (prompted if omitted)")
	name := fs.String("name", "", "Display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := credentials([]*string{username, password, name}, []string{"Username", "Password", "Name"})
	if err != nil {
		return err
	}

	user, err := a.Signup(ctx, *username, *password, *name)
	if err != nil {
		return failed(err, "sign up")
	}

	fmt.Printf("✓ Signed up and logged in as %s\n", user.Username)
	return nil
}

func handleLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password (prompted if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := credentials([]*string{username, password}, []string{"Username", "Password"}); err != nil {
		return err
	}

	user, err := a.Login(ctx, *username, *password)
	if err != nil {
		return failed(err, "log in")
	}

	fmt.Printf("✓ Logged in as %s\n", user.Username)
	fmt.Printf("  Favorites: %d\n", len(user.Favorites()))
	fmt.Printf("  Stories: %d\n", len(user.OwnStories()))
	return nil
}

// handleLogout clears the saved session even when it could not be restored.
func handleLogout(ctx context.Context, a *app.App, args []string) error {
	wasLoggedIn := a.LoggedIn()
	if err := a.Logout(); err != nil {
		return failed(err, "log out")
	}

	if wasLoggedIn {
		fmt.Println("✓ Logged out")
	} else {
		fmt.Println("Not logged in. Saved session cleared.")
	}
	return nil
}

func handleWhoami(ctx context.Context, a *app.App, args []string) error {
	user := a.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Name: %s\n", user.Name)
	fmt.Printf("Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
	fmt.Printf("Favorites: %d\n", len(user.Favorites()))
	fmt.Printf("Stories: %d\n", len(user.OwnStories()))
	return nil
}
