package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pranavmanvics24/ecowave-client/internal/api"
	"github.com/pranavmanvics24/ecowave-client/internal/command"
	"github.com/pranavmanvics24/ecowave-client/internal/config"
	"github.com/pranavmanvics24/ecowave-client/internal/query"
	"github.com/pranavmanvics24/ecowave-client/internal/state"
	"github.com/pranavmanvics24/ecowave-client/internal/store"
)

func main() {
	cfg := config.Load()

	log.Println("[CLI] ========================================")
	log.Println("[CLI] EcoWave Marketplace Client")
	log.Println("[CLI] ========================================")

	storage, err := state.OpenSQLite(cfg.StatePath)
	if err != nil {
		log.Fatalf("[CLI] Failed to open state storage: %v", err)
	}
	defer storage.Close()

	tokens := store.NewTokenStore(storage)
	authStore := store.NewAuthStore(storage, tokens)
	cart := store.NewCartStore(storage)

	client := api.NewClient(cfg.APIBaseURL)
	queries := query.NewHandler(client)
	commands := command.NewHandler(client, queries, authStore, tokens)

	app := &app{
		cart:     cart,
		auth:     authStore,
		tokens:   tokens,
		queries:  queries,
		commands: commands,
		in:       bufio.NewScanner(os.Stdin),
	}
	app.run()
}

type app struct {
	cart     *store.CartStore
	auth     *store.AuthStore
	tokens   *store.TokenStore
	queries  *query.Handler
	commands *command.Handler
	in       *bufio.Scanner
}

func (a *app) run() {
	ctx := context.Background()
	fmt.Println("Type 'help' for commands.")

	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		fields := strings.Fields(a.in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "list":
			a.listProducts(ctx, args)
		case "show":
			a.showProduct(ctx, args)
		case "add":
			a.addToCart(ctx, args)
		case "cart":
			a.showCart()
		case "qty":
			a.setQuantity(args)
		case "remove":
			if len(args) == 1 {
				a.cart.RemoveItem(args[0])
				a.showCart()
			} else {
				fmt.Println("usage: remove <product-id>")
			}
		case "clearcart":
			a.cart.Clear()
			fmt.Println("Cart cleared.")
		case "sell":
			a.sell(ctx)
		case "mylistings":
			a.myListings(ctx)
		case "delete":
			a.deleteListing(ctx, args)
		case "sold":
			a.markSold(ctx, args)
		case "contact":
			a.contactSeller(ctx, args)
		case "login":
			a.login(args)
		case "callback":
			a.completeLogin(args)
		case "logout":
			a.commands.Logout()
			fmt.Println("Logged out.")
		case "whoami":
			a.whoami()
		case "impact":
			a.impact(ctx)
		default:
			fmt.Printf("Unknown command %q. Type 'help'.\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  list [category] [search text]   browse products
  show <id>                       product details
  add <id>                        add product to cart
  cart                            show cart with total
  qty <id> <n>                    set quantity (0 removes)
  remove <id>                     remove from cart
  clearcart                       empty the cart
  sell                            create a listing (prompts)
  mylistings                      your listings
  delete <id>                     delete a listing
  sold <id> [buyer-email]         mark a listing sold
  contact <id>                    message the seller (prompts)
  login <email>                   email/password login (prompts)
  callback <url>                  finish identity-provider login
  logout                          end the session
  whoami                          current session
  impact                          your impact stats
  quit`)
}

func (a *app) listProducts(ctx context.Context, args []string) {
	filters := api.ProductFilters{}
	if len(args) > 0 {
		filters.Category = args[0]
	}
	if len(args) > 1 {
		filters.Search = strings.Join(args[1:], " ")
	}

	products, err := a.queries.Products(ctx, filters)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}
	for _, p := range products {
		status := ""
		if p.Status == "sold" {
			status = "  [SOLD]"
		}
		fmt.Printf("%-36s  %-30s  %8.2f  %s%s\n", p.ID, p.Title, p.Price, p.Badge, status)
	}
}

func (a *app) showProduct(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: show <product-id>")
		return
	}
	p, err := a.queries.Product(ctx, args[0])
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%s (%s)\n%s\nPrice: %.2f  Category: %s  Status: %s\n",
		p.Title, p.Badge, p.Description, p.Price, p.Category, p.Status)
	if p.EcoImpact != nil {
		fmt.Printf("Eco impact: %.1f kg CO2, %.1f L water, %.1f kg waste\n",
			p.EcoImpact.CO2, p.EcoImpact.Water, p.EcoImpact.Waste)
	}
	if p.SellerEmail != "" {
		fmt.Printf("Seller: %s (%s)\n", p.SellerEmail, p.SellerLocation)
	}
}

func (a *app) addToCart(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: add <product-id>")
		return
	}
	p, err := a.queries.Product(ctx, args[0])
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	a.cart.AddItem(*p)
	fmt.Printf("Added %q. Cart has %d item(s).\n", p.Title, a.cart.Count())
}

func (a *app) showCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("%-36s  %-30s  %8.2f x %d\n", item.ID, item.Title, item.Price, item.Quantity)
	}
	fmt.Printf("Total: %.2f (%d items)\n", a.cart.Total(), a.cart.Count())
}

func (a *app) setQuantity(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: qty <product-id> <quantity>")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("Quantity must be a number.")
		return
	}
	a.cart.UpdateQuantity(args[0], quantity)
	a.showCart()
}

func (a *app) sell(ctx context.Context) {
	cmd := command.CreateListing{
		Title:          a.prompt("Title"),
		Description:    a.prompt("Description"),
		Badge:          a.prompt("Condition (e.g. New, Used)"),
		Category:       a.prompt("Category"),
		Material:       a.prompt("Material"),
		ImagePath:      a.prompt("Image file (blank for placeholder)"),
		SellerEmail:    a.sellerEmail(),
		SellerLocation: a.prompt("Location"),
		SellerPhone:    a.prompt("Phone"),
	}
	price, err := strconv.ParseFloat(a.prompt("Price"), 64)
	if err != nil {
		fmt.Println("Price must be a number.")
		return
	}
	cmd.Price = price

	product, err := a.commands.CreateListing(ctx, cmd)
	if err != nil {
		fmt.Println("Failed to list product:", err)
		return
	}
	fmt.Printf("Listed %q as %s\n", product.Title, product.ID)
}

func (a *app) myListings(ctx context.Context) {
	user := a.auth.User()
	if user == nil {
		fmt.Println("Log in first.")
		return
	}
	products, err := a.queries.SellerListings(ctx, user.Email)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(products) == 0 {
		fmt.Println("No listings yet.")
		return
	}
	for _, p := range products {
		fmt.Printf("%-36s  %-30s  %8.2f  %s\n", p.ID, p.Title, p.Price, p.Status)
	}
}

func (a *app) deleteListing(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: delete <product-id>")
		return
	}
	user := a.auth.User()
	if user == nil {
		fmt.Println("Log in first.")
		return
	}
	cmd := command.DeleteListing{ProductID: args[0], SellerEmail: user.Email}
	if err := a.commands.DeleteListing(ctx, cmd); err != nil {
		fmt.Println("Failed to delete listing:", err)
		return
	}
	fmt.Println("Listing deleted.")
}

func (a *app) markSold(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: sold <product-id> [buyer-email]")
		return
	}
	cmd := command.MarkSold{ProductID: args[0]}
	if len(args) > 1 {
		cmd.BuyerEmail = args[1]
	}
	if err := a.commands.MarkSold(ctx, cmd); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Product marked as sold!")
}

func (a *app) contactSeller(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: contact <product-id>")
		return
	}
	product, err := a.queries.Product(ctx, args[0])
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	cmd := command.ContactSeller{
		ProductID:   product.ID,
		SellerEmail: product.SellerEmail,
		BuyerName:   a.prompt("Your name"),
		BuyerEmail:  a.prompt("Your email"),
		Message:     a.prompt("Message"),
	}
	emailSent, err := a.commands.ContactSeller(ctx, cmd)
	if err != nil {
		fmt.Println("Failed to send message:", err)
		return
	}
	if emailSent {
		fmt.Println("Message sent! The seller was notified by email.")
	} else {
		fmt.Println("Message recorded. The seller will see it when they check their inquiries.")
	}
}

func (a *app) login(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: login <email>")
		return
	}
	password := a.prompt("Password")
	if err := a.commands.PasswordLogin(args[0], password); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Login successful! Welcome back to EcoWave.")
}

func (a *app) completeLogin(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: callback <redirect-url>")
		return
	}
	user, err := a.commands.CompleteLogin(args[0])
	if err != nil {
		fmt.Println("Error:", err)
		fmt.Println("Use 'login <email>' or retry the provider flow.")
		return
	}
	fmt.Printf("Successfully logged in as %s <%s>\n", user.Name, user.Email)
}

func (a *app) whoami() {
	user := a.auth.User()
	if user == nil {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s <%s> (session %s)\n", user.Name, user.Email, a.auth.SessionID())
}

func (a *app) impact(ctx context.Context) {
	token := a.tokens.Get()
	if token == "" {
		fmt.Println("Impact stats need a provider login (see 'callback').")
		return
	}
	stats, err := a.queries.Impact(ctx, token)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			fmt.Println("Error:", httpErr.Message)
			return
		}
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("CO2 saved: %.1f kg\nWater saved: %.1f L\nWaste saved: %.1f kg\nItems recycled: %d\nItems purchased: %d\n",
		stats.CO2Saved, stats.WaterSaved, stats.WasteSaved, stats.ItemsRecycled, stats.ItemsPurchased)
}

// sellerEmail defaults to the logged-in user's email so listings and
// sessions line up, but still allows an override.
func (a *app) sellerEmail() string {
	if user := a.auth.User(); user != nil {
		fmt.Printf("Contact email [%s]: ", user.Email)
		if a.in.Scan() {
			if text := strings.TrimSpace(a.in.Text()); text != "" {
				return text
			}
		}
		return user.Email
	}
	return a.prompt("Contact email")
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}
