// Package sendpost provides a Go client SDK for SendPost, an email
// sending platform for transactional and marketing mail.
//
// The SDK covers both credential scopes of the API: account-scoped
// operations (sub-accounts, webhooks, IPs, IP pools, account statistics,
// message lookup) live on the Client, while sub-account-scoped
// operations (sending domains, email send, sub-account statistics) live
// on a SubAccount handle bound to that sub-account's API key.
//
// Basic usage:
//
//	client, err := sendpost.New("your-account-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Create a sub-account; the response carries its API key.
//	info, err := client.CreateSubAccount(ctx, "production")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Send through the sub-account.
//	sub := client.SubAccount(info.ID, info.APIKey)
//	receipts, err := sub.SendEmail(ctx, &sendpost.EmailMessage{
//	    From:     sendpost.EmailAddress{Email: "orders@yourdomain.com"},
//	    To:       []sendpost.Recipient{{Email: "customer@example.com"}},
//	    Subject:  "Order Confirmation",
//	    TextBody: "Thanks for your order.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Message ID:", receipts[0].MessageID)
package sendpost
