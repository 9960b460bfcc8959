/*
Package tallysdk provides a client SDK for the tally finance service.

# Overview

SDKClient wraps the public HTTP surface: registration, login, the four
finance record operations and the health endpoints. Login hands back a
Session that remembers the token and username, so callers do not have to
repeat either on every finance call.

	client := tallysdk.NewSDKClient("http://localhost:5000")

	if _, err := client.Signup(ctx, "alice", "secret1"); err != nil {
		return err
	}

	session, err := client.LoginSession(ctx, "alice", "secret1")
	if err != nil {
		return err
	}

	_, err = session.AddFinance(ctx, tallysdk.FinanceInput{
		Month:    "2024-01",
		Income:   tallysdk.Float(1000),
		Expenses: tallysdk.Float(400),
	})

	entries, err := session.GetFinanceData(ctx)

# Errors

Any non-success response is returned as *APIError carrying the HTTP status
and the server's message:

	var apiErr *tallysdk.APIError
	if errors.As(err, &apiErr) && apiErr.Message == "Username is already taken." {
		// pick another name
	}

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package tallysdk
