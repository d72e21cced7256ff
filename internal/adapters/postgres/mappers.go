package postgres

import (
	"encoding/json"

	"github.com/adotaqui/platform-service/internal/domain"
)

func toDomainOng(m ongModel) domain.Ong {
	return domain.Ong{
		OngID: m.OngID, Name: m.Name, Country: m.Country, City: m.City,
		Email: m.Email, Phone: m.Phone, About: m.About, Active: m.Active,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainPet(m petModel) domain.Pet {
	return domain.Pet{
		PetID: m.PetID, OngID: m.OngID, Name: m.Name, Species: m.Species, Breed: m.Breed,
		AgeMonths: m.AgeMonths, Size: m.Size, Description: m.Description, Adopted: m.Adopted,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainPaymentConfig(m paymentConfigModel) domain.PaymentConfig {
	return domain.PaymentConfig{
		ConfigID: m.ConfigID, OngID: m.OngID, Country: m.Country,
		MBWayPhone: m.MBWayPhone, IBAN: m.IBAN, MultibancoEntity: m.MultibancoEntity,
		PixKey: m.PixKey, PixKeyType: domain.PixKeyType(m.PixKeyType),
		BankName: m.BankName, BankRoutingNumber: m.BankRoutingNumber, BankAccountNumber: m.BankAccountNumber,
		Configured: m.Configured, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDonationModel(d domain.Donation) donationModel {
	raw, _ := json.Marshal(d.Instructions)
	return donationModel{
		DonationID: d.DonationID, OngID: d.OngID, DonorName: d.DonorName, DonorEmail: d.DonorEmail,
		AmountCents: d.AmountCents, Currency: d.Currency, Method: string(d.Method),
		Status: string(d.Status), Instructions: string(raw),
		CreatedAt: d.CreatedAt, ConfirmedAt: d.ConfirmedAt, UpdatedAt: d.CreatedAt,
	}
}

func toDomainDonation(m donationModel) domain.Donation {
	var instructions domain.PaymentInstructions
	_ = json.Unmarshal([]byte(m.Instructions), &instructions)
	return domain.Donation{
		DonationID: m.DonationID, OngID: m.OngID, DonorName: m.DonorName, DonorEmail: m.DonorEmail,
		AmountCents: m.AmountCents, Currency: m.Currency, Method: domain.PaymentMethod(m.Method),
		Status: domain.DonationStatus(m.Status), Instructions: instructions,
		CreatedAt: m.CreatedAt, ConfirmedAt: m.ConfirmedAt,
	}
}

func toDomainOperatingHours(m operatingHoursModel) domain.OperatingHours {
	return domain.OperatingHours{
		HoursID: m.HoursID, OngID: m.OngID, Weekday: m.Weekday, Open: m.Open,
		OpenMinute: m.OpenMinute, CloseMinute: m.CloseMinute,
		LunchStartMin: m.LunchStartMin, LunchEndMin: m.LunchEndMin,
	}
}

func toDomainException(m availabilityExceptionModel) domain.AvailabilityException {
	return domain.AvailabilityException{
		ExceptionID: m.ExceptionID, OngID: m.OngID, Type: domain.ExceptionType(m.Type),
		StartDate: m.StartDate, EndDate: m.EndDate,
		OpenMinute: m.OpenMinute, CloseMinute: m.CloseMinute,
		LunchStartMin: m.LunchStartMin, LunchEndMin: m.LunchEndMin,
		Reason: m.Reason, CreatedAt: m.CreatedAt,
	}
}

func toDomainSettings(m appointmentSettingsModel) domain.AppointmentSettings {
	return domain.AppointmentSettings{
		SettingsID: m.SettingsID, OngID: m.OngID,
		VisitDurationMin: m.VisitDurationMin, MaxConcurrentVisits: m.MaxConcurrentVisits,
		MinAdvanceHours: m.MinAdvanceHours, MaxAdvanceDays: m.MaxAdvanceDays,
		SlotIntervalMin: m.SlotIntervalMin, AllowWeekendBookings: m.AllowWeekendBookings,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainAppointment(m appointmentModel) domain.Appointment {
	return domain.Appointment{
		AppointmentID: m.AppointmentID, OngID: m.OngID, PetID: m.PetID,
		VisitorName: m.VisitorName, VisitorEmail: m.VisitorEmail,
		StartsAt: m.StartsAt, EndsAt: m.EndsAt, Status: domain.AppointmentStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}
