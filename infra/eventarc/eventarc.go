package eventarc

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/eventarc"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupProfileTrigger routes every committed write to the profiles
// collection into the API's events route. Only the trigger's service
// account gets run.invoker on that path, which is the trust boundary for
// the claim sync entry point.
func SetupProfileTrigger(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider, res ...pulumi.Resource) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	srv, err := enableEventarc(ctx, prov)
	if err != nil {
		return err
	}

	triggerSA, err := createTriggerServiceAccount(ctx, projectID, prov)
	if err != nil {
		return err
	}

	_, err = eventarc.NewTrigger(ctx, "profileWriteTrigger", &eventarc.TriggerArgs{
		Location: pulumi.String(region),
		MatchingCriterias: eventarc.TriggerMatchingCriteriaArray{
			&eventarc.TriggerMatchingCriteriaArgs{
				Attribute: pulumi.String("type"),
				Value:     pulumi.String("google.cloud.firestore.document.v1.written"),
			},
			&eventarc.TriggerMatchingCriteriaArgs{
				Attribute: pulumi.String("database"),
				Value:     pulumi.String("(default)"),
			},
			&eventarc.TriggerMatchingCriteriaArgs{
				Attribute: pulumi.String("document"),
				Operator:  pulumi.String("match-path-pattern"),
				Value:     pulumi.String("profiles/{profileId}"),
			},
		},
		ServiceAccount: triggerSA.Email,
		Destination: &eventarc.TriggerDestinationArgs{
			CloudRunService: &eventarc.TriggerDestinationCloudRunServiceArgs{
				Service: svc.Name,
				Region:  pulumi.String(region),
				Path:    pulumi.String("/events/profiles"),
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(append(res, srv)),
	)
	return err
}

func enableEventarc(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "eventarcService", &projects.ServiceArgs{
		Service: pulumi.String("eventarc.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createTriggerServiceAccount(ctx *pulumi.Context, projectID string, prov *gcp.Provider) (*serviceaccount.Account, error) {
	triggerSA, err := serviceaccount.NewAccount(ctx, "profileTriggerServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("profile-trigger"),
		DisplayName: pulumi.String("Profile Write Trigger Service Account"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = projects.NewIAMMember(ctx, "eventReceiverAccess", &projects.IAMMemberArgs{
		Role: pulumi.String("roles/eventarc.eventReceiver"),
		Member: triggerSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
		Project: pulumi.String(projectID),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = projects.NewIAMMember(ctx, "triggerInvokerAccess", &projects.IAMMemberArgs{
		Role: pulumi.String("roles/run.invoker"),
		Member: triggerSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
		Project: pulumi.String(projectID),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return triggerSA, nil
}
