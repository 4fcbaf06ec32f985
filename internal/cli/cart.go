package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pantry/internal/api"
	"pantry/internal/cart"
	"pantry/internal/domain"
	"pantry/internal/items"
)

func newCartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the signed-in user's cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := cart.NewManager(a.bus, a.client, a.logger)
			defer mgr.Close()

			lines, err := mgr.Refresh(cmd.Context())
			if err != nil {
				return cartError(err)
			}
			printCart(cmd, lines)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add ITEM_ID [QUANTITY]",
		Short: "Add an item to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := positiveArg("item id", args[0])
			if err != nil {
				return err
			}
			quantity := 1
			if len(args) == 2 {
				if quantity, err = positiveArg("quantity", args[1]); err != nil {
					return err
				}
			}
			if err := a.client.AddToCart(cmd.Context(), itemID, quantity); err != nil {
				return cartError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d × item %d.\n", quantity, itemID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "remove ITEM_ID",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := positiveArg("item id", args[0])
			if err != nil {
				return err
			}
			if err := a.client.RemoveFromCart(cmd.Context(), itemID); err != nil {
				return cartError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d.\n", itemID)
			return nil
		},
	})
	return cmd
}

func positiveArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number (got %q)", name, s)
	}
	return n, nil
}

func cartError(err error) error {
	switch {
	case api.IsUnauthorized(err):
		return errors.New(cart.NotLoggedInMessage)
	case api.IsNotFound(err):
		return fmt.Errorf("not found: %w", err)
	}
	return err
}

func printCart(cmd *cobra.Command, lines []domain.CartLine) {
	out := cmd.OutOrStdout()
	if len(lines) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}
	total := 0.0
	for _, l := range lines {
		name := fmt.Sprintf("item #%d", l.ItemID)
		price := 0.0
		if l.Item != nil {
			name, price = l.Item.Name, l.Item.Price
		}
		subtotal := price * float64(l.Quantity)
		total += subtotal
		fmt.Fprintf(out, "%4d  %3d × %-20s %9s\n", l.ItemID, l.Quantity, name, items.FormatPrice(subtotal))
	}
	fmt.Fprintf(out, "Total: %s\n", items.FormatPrice(total))
}
