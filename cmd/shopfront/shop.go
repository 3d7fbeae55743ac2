package main

import (
	"errors"
	"flag"
	"os"
	"text/tabwriter"

	"github.com/online-shop/shopfront/internal/domain/model"
)

func runProducts(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	category := fs.String("category", "", "filter by category")
	search := fs.String("search", "", "search term")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := ctx.Services.Catalog.List(ctx.Ctx, model.ProductQuery{
		Page:     *page,
		Size:     *size,
		Category: *category,
		Search:   *search,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\n"); err != nil {
		return err
	}
	for _, p := range result.Content {
		if err := writef(w, "%d\t%s\t%.2f\t%d\t%s\n", p.ID, p.Name, p.Price, p.Quantity, p.Category); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "page %d of %d (%d products)\n", result.Number+1, result.TotalPages, result.TotalElements)
}

func runCartShow(ctx *commandContext, _ []string) error {
	if err := requireLogin(ctx); err != nil {
		return err
	}
	if err := ctx.Services.Cart.LoadCart(ctx.Ctx); err != nil {
		return err
	}

	cart := ctx.Services.Cart.Cart()
	if cart == nil || len(cart.Items) == 0 {
		return writef(os.Stdout, "cart is empty\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ITEM\tPRODUCT\tQTY\tSUBTOTAL\n"); err != nil {
		return err
	}
	for _, item := range cart.Items {
		if err := writef(w, "%d\t%s\t%d\t%.2f\n", item.ID, item.ProductName, item.Quantity, item.Subtotal); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writef(os.Stdout, "%d items, total %.2f\n", ctx.Services.Cart.CartItemCount(), ctx.Services.Cart.CartTotal())
}

func runCartAdd(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ContinueOnError)
	productID := fs.Int64("product", 0, "product id")
	quantity := fs.Int("quantity", 1, "quantity to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == 0 {
		return errors.New("-product is required")
	}
	if err := requireLogin(ctx); err != nil {
		return err
	}

	product, err := ctx.Services.Catalog.Get(ctx.Ctx, *productID)
	if err != nil {
		return err
	}
	if err := ctx.Services.Cart.AddToCart(ctx.Ctx, product, *quantity); err != nil {
		return err
	}
	return writef(os.Stdout, "added %d x %s; cart now has %d items\n",
		*quantity, product.Name, ctx.Services.Cart.CartItemCount())
}

func runCartUpdate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("cart-update", flag.ContinueOnError)
	itemID := fs.Int64("item", 0, "cart item id")
	quantity := fs.Int("quantity", 0, "new quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *itemID == 0 {
		return errors.New("-item is required")
	}
	if err := requireLogin(ctx); err != nil {
		return err
	}

	if err := ctx.Services.Cart.UpdateQuantity(ctx.Ctx, *itemID, *quantity); err != nil {
		return err
	}
	return writef(os.Stdout, "cart now has %d items, total %.2f\n",
		ctx.Services.Cart.CartItemCount(), ctx.Services.Cart.CartTotal())
}

func runCartRemove(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("cart-remove", flag.ContinueOnError)
	itemID := fs.Int64("item", 0, "cart item id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *itemID == 0 {
		return errors.New("-item is required")
	}
	if err := requireLogin(ctx); err != nil {
		return err
	}

	if err := ctx.Services.Cart.RemoveFromCart(ctx.Ctx, *itemID); err != nil {
		return err
	}
	return writef(os.Stdout, "cart now has %d items\n", ctx.Services.Cart.CartItemCount())
}

func runCartClear(ctx *commandContext, _ []string) error {
	if err := requireLogin(ctx); err != nil {
		return err
	}
	if err := ctx.Services.Cart.ClearCart(ctx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "cart cleared\n")
}

func runCheckout(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	shipping := fs.String("shipping", "", "shipping address")
	billing := fs.String("billing", "", "billing address (defaults to shipping)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireLogin(ctx); err != nil {
		return err
	}

	order, err := ctx.Services.Orders.Checkout(ctx.Ctx, *shipping, *billing)
	if err != nil {
		return err
	}

	// The backend consumed the cart; refresh the local snapshot.
	if err := ctx.Services.Cart.LoadCart(ctx.Ctx); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "refresh cart after checkout", "error", err)
	}
	return writef(os.Stdout, "order %d placed, status %s, total %.2f\n", order.ID, order.Status, order.TotalPrice)
}

func runOrders(ctx *commandContext, _ []string) error {
	if err := requireLogin(ctx); err != nil {
		return err
	}

	orders, err := ctx.Services.Orders.History(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return writef(os.Stdout, "no orders yet\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ORDER\tSTATUS\tTOTAL\tPLACED\n"); err != nil {
		return err
	}
	for _, o := range orders {
		if err := writef(w, "%d\t%s\t%.2f\t%s\n", o.ID, o.Status, o.TotalPrice, o.OrderDate.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return w.Flush()
}

func requireLogin(ctx *commandContext) error {
	if !ctx.Services.Session.IsAuthenticated() {
		return errors.New("not logged in; run 'shopfront login' first")
	}
	return nil
}
