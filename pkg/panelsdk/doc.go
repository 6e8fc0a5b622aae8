/*
Package panelsdk is the Go client for the panel HTTP API and the home of its
request and response types.

An SDKClient covers the public endpoints and opens a Session through login:

	client := panelsdk.NewSDKClient("http://localhost:3001")

	health, err := client.GetLiveness(ctx)

	session, err := client.Login(ctx, panelsdk.LoginRequest{Username: "maria", Password: pw})
	var otpErr *panelsdk.APIError
	if errors.As(err, &otpErr) && otpErr.Message == panelsdk.MessageOTPRequired {
		// ask for the code and retry with OTP set
	}

A Session carries the bearer token:

	c, err := session.CreateClient(ctx, panelsdk.CreateClientRequest{...})
	page, err := session.ListClients(ctx, panelsdk.ListClientsParams{Status: "active"})
	err = session.Logout(ctx)

Every non-2xx response is returned as an *APIError decoded from the error
envelope.
*/
package panelsdk
