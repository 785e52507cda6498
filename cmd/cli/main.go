// The cli binary is the terminal front-end: auth, menu browsing with a
// persistent cart, order tracking and the admin dashboard. Every flow
// first navigates the guarded route table, so access control is enforced
// before any backend call is made.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/adr1ann32323/restorApp/internal/api"
	"github.com/adr1ann32323/restorApp/internal/config"
	"github.com/adr1ann32323/restorApp/internal/localstore"
	"github.com/adr1ann32323/restorApp/internal/models"
	"github.com/adr1ann32323/restorApp/internal/router"
	"github.com/adr1ann32323/restorApp/internal/state"
)

type app struct {
	store  *localstore.Store
	client *api.Client
	auth   *state.Auth
	cart   *state.Cart
	orders *state.Orders
	router *router.Router
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fatal("failed to load configuration: %v", err)
	}

	store, err := localstore.Open(cfg.StatePath)
	if err != nil {
		fatal("failed to open local state: %v", err)
	}
	defer store.Close()

	client := api.NewClient(cfg.APIBaseURL)
	a := &app{
		store:  store,
		client: client,
		auth:   state.NewAuth(client, store),
		cart:   state.NewCart(store),
	}
	a.orders = state.NewOrders(client)
	a.router = router.New(a.auth)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "register":
		a.register(ctx, os.Args[2:])
	case "login":
		a.login(ctx, os.Args[2:])
	case "logout":
		a.logout()
	case "whoami":
		a.whoami()
	case "menu":
		a.menu(ctx, os.Args[2:])
	case "cart":
		a.showCart()
	case "cart-add":
		a.cartAdd(ctx, os.Args[2:])
	case "cart-set":
		a.cartSet(os.Args[2:])
	case "cart-remove":
		a.cartRemove(os.Args[2:])
	case "cart-clear":
		a.cartClear()
	case "checkout":
		a.checkout(ctx)
	case "orders":
		a.listOrders(ctx, os.Args[2:])
	case "order":
		a.showOrder(ctx, os.Args[2:])
	case "cancel":
		a.cancelOrder(ctx, os.Args[2:])
	case "dashboard":
		a.dashboard(ctx)
	case "set-status":
		a.setStatus(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`usage: cli <command> [flags]

  register    -name -email -password [-admin]
  login       -email -password
  logout
  whoami
  menu        [-all]
  cart
  cart-add    -product -qty [-notes]
  cart-set    -product -qty
  cart-remove -product
  cart-clear
  checkout
  orders      [-status] [-from] [-to]
  order       -id
  cancel      -id
  dashboard
  set-status  -id -status`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// navigate runs the route's guard chain and reports false when the flow
// was redirected away, printing where and why.
func (a *app) navigate(path string) bool {
	res, err := a.router.Navigate(path)
	if err != nil {
		fatal("%v", err)
	}
	if !res.Redirected {
		return true
	}
	switch res.Path {
	case router.PathAuth:
		fmt.Println("You need to log in first (cli login -email ... -password ...).")
		if res.ReturnURL != "" {
			fmt.Printf("After logging in you can retry %s.\n", res.ReturnURL)
		}
	case router.PathUnauthorized:
		fmt.Println("You are not allowed to access this page.")
	default:
		fmt.Printf("Redirected to %s.\n", res.Path)
	}
	return false
}

// --- client-side form validation (kept out of the state managers) ---

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("please enter a valid email address")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// --- AUTH FLOW ---

func (a *app) register(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Your name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (min 6 characters)")
	admin := fs.Bool("admin", false, "Register as ADMIN")
	fs.Parse(args)

	if !a.navigate(router.PathAuth) {
		return
	}
	if *name == "" {
		fatal("name is required")
	}
	if err := validateCredentials(*email, *password); err != nil {
		fatal("%v", err)
	}

	req := models.RegisterRequest{Name: *name, Email: *email, Password: *password}
	if *admin {
		req.Role = models.RoleAdmin
	}
	sess, err := a.auth.Register(ctx, req)
	if err != nil {
		fatal("registration failed: %v", err)
	}
	fmt.Printf("Welcome, %s! You are registered and logged in as %s.\n", sess.User.Name, sess.User.Role)
}

func (a *app) login(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password")
	fs.Parse(args)

	if !a.navigate(router.PathAuth) {
		return
	}
	if err := validateCredentials(*email, *password); err != nil {
		fatal("%v", err)
	}

	sess, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		fatal("login failed: %v", err)
	}
	fmt.Printf("Logged in as %s (%s).\n", sess.User.Name, sess.User.Role)
}

func (a *app) logout() {
	a.auth.Logout()
	fmt.Println("Logged out.")
}

func (a *app) whoami() {
	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return
	}
	expired := ""
	if a.auth.IsTokenExpired() {
		expired = " (token expired, please log in again)"
	}
	fmt.Printf("%s <%s> role=%s%s\n", user.Name, user.Email, user.Role, expired)
}

// --- MENU & CART FLOW ---

func (a *app) menu(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)
	all := fs.Bool("all", false, "Include inactive products (ADMIN)")
	fs.Parse(args)

	if !a.navigate(router.PathProducts) {
		return
	}

	products, err := a.client.ListProducts(ctx, !*all)
	if err != nil {
		fatal("failed to fetch the menu: %v", err)
	}

	if len(products) == 0 {
		fmt.Println("The menu is empty.")
		return
	}
	for _, p := range products {
		category := string(p.Category)
		if category == "" {
			category = "OTHER"
		}
		active := ""
		if !p.IsActive {
			active = " [inactive]"
		}
		fmt.Printf("#%d  %-24s %8.2f  %s  (stock %d)%s\n", p.ID, p.Name, p.Price, category, p.Stock, active)
	}
}

func (a *app) showCart() {
	if !a.navigate(router.PathProducts) {
		return
	}

	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("#%d  %-24s x%d @ %.2f = %.2f", item.ProductID, item.ProductName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
		if item.Notes != "" {
			fmt.Printf("  (%s)", item.Notes)
		}
		fmt.Println()
	}
	fmt.Printf("items: %d  subtotal: %.2f  tax: %.2f  total: %.2f\n",
		a.cart.ItemCount(), a.cart.Subtotal(), a.cart.Tax(), a.cart.Total())
}

func (a *app) cartAdd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("cart-add", flag.ExitOnError)
	productID := fs.Int("product", 0, "Product id")
	qty := fs.Int("qty", 1, "Quantity")
	notes := fs.String("notes", "", "Special requests for this item")
	fs.Parse(args)

	if !a.navigate(router.PathProducts) {
		return
	}
	if *productID <= 0 {
		fatal("product id is required")
	}

	product, err := a.client.GetProduct(ctx, *productID)
	if err != nil {
		fatal("failed to fetch product: %v", err)
	}

	a.cart.Add(models.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    *qty,
		ImageURL:    product.ImageURL,
		Notes:       *notes,
	})
	fmt.Printf("Added %s. Cart now has %d item(s), total %.2f.\n", product.Name, a.cart.ItemCount(), a.cart.Total())
}

func (a *app) cartSet(args []string) {
	fs := flag.NewFlagSet("cart-set", flag.ExitOnError)
	productID := fs.Int("product", 0, "Product id")
	qty := fs.Int("qty", 0, "New quantity (0 removes)")
	fs.Parse(args)

	if !a.navigate(router.PathProducts) {
		return
	}
	a.cart.UpdateQuantity(*productID, *qty)
	fmt.Printf("Cart now has %d item(s), total %.2f.\n", a.cart.ItemCount(), a.cart.Total())
}

func (a *app) cartRemove(args []string) {
	fs := flag.NewFlagSet("cart-remove", flag.ExitOnError)
	productID := fs.Int("product", 0, "Product id")
	fs.Parse(args)

	if !a.navigate(router.PathProducts) {
		return
	}
	a.cart.Remove(*productID)
	fmt.Printf("Cart now has %d item(s).\n", a.cart.ItemCount())
}

func (a *app) cartClear() {
	if !a.navigate(router.PathProducts) {
		return
	}
	a.cart.Clear()
	fmt.Println("Cart cleared.")
}

func (a *app) checkout(ctx context.Context) {
	if !a.navigate(router.PathProducts) {
		return
	}
	if a.cart.ItemCount() == 0 {
		fatal("your cart is empty")
	}

	order, err := a.orders.Create(ctx, a.cart.CheckoutRequest())
	if err != nil {
		fatal("checkout failed: %v", err)
	}
	a.cart.Clear()
	fmt.Printf("Order #%d placed, total %.2f, status %s.\n", order.ID, order.Total, order.Status)
}

// --- ORDERS FLOW ---

func (a *app) listOrders(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status (PENDING, PREPARING, DELIVERED, CANCELLED)")
	from := fs.String("from", "", "Start date (YYYY-MM-DD)")
	to := fs.String("to", "", "End date (YYYY-MM-DD)")
	fs.Parse(args)

	if !a.navigate(router.PathOrders) {
		return
	}

	filters := &models.OrderFilters{
		Status:    models.OrderStatus(strings.ToUpper(*status)),
		StartDate: *from,
		EndDate:   *to,
	}
	orders, err := a.orders.List(ctx, filters)
	if err != nil {
		fatal("failed to list orders: %v", err)
	}

	if len(orders) == 0 {
		fmt.Println("No orders.")
		return
	}
	for _, o := range orders {
		who := ""
		if o.User != nil && a.auth.CurrentRole() == models.RoleAdmin {
			who = "  " + o.User.Email
		}
		fmt.Printf("#%d  %-10s %8.2f  %s%s\n", o.ID, o.Status, o.Total, o.CreatedAt.Local().Format("2006-01-02 15:04"), who)
	}
}

func (a *app) showOrder(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.Int("id", 0, "Order id")
	fs.Parse(args)

	if !a.navigate(router.PathOrders) {
		return
	}

	order, err := a.orders.Get(ctx, *id)
	if err != nil {
		fatal("failed to fetch order: %v", err)
	}
	fmt.Printf("Order #%d  %s  total %.2f  placed %s\n", order.ID, order.Status, order.Total, order.CreatedAt.Local().Format("2006-01-02 15:04"))
	for _, item := range order.Items {
		fmt.Printf("  %-24s x%d @ %.2f\n", item.ProductName, item.Quantity, item.Price)
	}
}

func (a *app) cancelOrder(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.Int("id", 0, "Order id")
	fs.Parse(args)

	if !a.navigate(router.PathOrders) {
		return
	}

	order, err := a.orders.Cancel(ctx, *id)
	if err != nil {
		fatal("failed to cancel order: %v", err)
	}
	fmt.Printf("Order #%d is now %s.\n", order.ID, order.Status)
}

// --- ADMIN FLOW ---

func (a *app) dashboard(ctx context.Context) {
	if !a.navigate(router.PathDashboard) {
		return
	}

	orders, err := a.orders.List(ctx, nil)
	if err != nil {
		fatal("failed to fetch orders: %v", err)
	}

	stats := state.ComputeStats(orders)
	fmt.Printf(`Dashboard
  total orders:   %d
  pending orders: %d
  total revenue:  %.2f
  today's orders: %d
  today's revenue: %.2f
`, stats.TotalOrders, stats.PendingOrders, stats.TotalRevenue, stats.TodayOrders, stats.TodayRevenue)
}

func (a *app) setStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	id := fs.Int("id", 0, "Order id")
	status := fs.String("status", "", "New status (PENDING, PREPARING, DELIVERED, CANCELLED)")
	fs.Parse(args)

	if !a.navigate(router.PathDashboard) {
		return
	}

	order, err := a.orders.UpdateStatus(ctx, *id, models.OrderStatus(strings.ToUpper(*status)))
	if err != nil {
		fatal("failed to update status: %v", err)
	}
	fmt.Printf("Order #%d is now %s.\n", order.ID, order.Status)
}
