/*
Package estatesdk is a Go client for the estate marketplace API.

# Client vs Session

Client covers the public endpoints: health probes, the OTP login flow,
token refresh and public listing reads. Session wraps an access token and
covers everything that needs one.

	client := estatesdk.NewClient("https://api.example.com")

	if _, err := client.SendOTP(ctx, estatesdk.SendOTPRequest{Phone: phone, Role: "buyer"}); err != nil {
		return err
	}
	login, err := client.VerifyOTP(ctx, estatesdk.VerifyOTPRequest{Phone: phone, OTP: code, Role: "buyer"})
	if err != nil {
		return err
	}

	session := client.NewSession(login.AccessToken)
	profile, err := session.Profile(ctx)

# Errors

Every non-2xx reply becomes an *APIError carrying the status code and the
server's message:

	var apiErr *estatesdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		// wait before asking for another code
	}
*/
package estatesdk
