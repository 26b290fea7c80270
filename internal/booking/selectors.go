package booking

// Selectors of the booking site. The page structure is owned by the site.
const (
	selCookieAccept = "#cookieAccpetBtn"

	// Search page.
	selStartStation  = `select[name="selectStartStation"]`
	selEndStation    = `select[name="selectDestinationStation"]`
	selDepartureDate = "#toTimeInputField"
	selDepartureTime = `select[name="toTimeTable"]`
	selAdultTickets  = `select[name="ticketPanel:rows:0:ticketAmount"]`
	selCaptchaImage  = "#BookingS1Form_homeCaptcha_passCode"
	selCaptchaInput  = "#securityCode"
	selCaptchaReload = "#BookingS1Form_homeCaptcha_reCodeLink"
	selSubmit        = "#SubmitButton"
	selErrorMessage  = "#feedMSG"

	// Train selection page.
	selStep2Form    = "#BookingS2Form"
	selTrainList    = ".result-listing"
	selTrainRadio   = `input[name="TrainQueryDataViewPanel:TrainGroup"]`
	selConfirmTrain = `input[name="SubmitButton"]`

	// Passenger page.
	selStep3Form      = "#BookingS3FormSP"
	selPassengerID    = "#idNumber"
	selPassengerPhone = "#mobilePhone"
	selPassengerEmail = "#email"
	selAgree          = `input[name="agree"]`
	selConfirmBooking = "#isSubmit"
)

// setDateScript assigns the date picker's hidden input and notifies the widget.
const setDateScript = `([selector, value]) => {
	const el = document.querySelector(selector);
	el.value = value;
	el.dispatchEvent(new Event("change"));
}`
